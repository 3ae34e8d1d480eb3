package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/aggregator"
	"github.com/prospectlab/milbstats/internal/pbpstore"
)

const analyzeSystemPrompt = `You are a minor-league baseball scouting analyst. You are given structured
advanced-stat data computed from play-by-play logs and a question.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Small samples matter: mention the BIP or pitch counts behind a rate
  before drawing conclusions from it.
- Be concise and concrete — focus on what the numbers say about the
  player's profile, not on generic scouting advice.

Metrics glossary:
- GB%/FB%/LD%: share of classifiable balls in play that were ground balls,
  fly balls, line drives. League-typical GB% is ~43%.
- HR/FB: home runs per fly ball. >0.15 suggests real power.
- Pull%: share of direction-known balls in play hit to the pull side.
- Pull-Air%: same, restricted to fly balls and line drives — the power
  indicator that matters most for home-run projection.
- Swing%: swings per pitch seen.
- Contact%: contact per swing. <70% signals swing-and-miss risk.
- CSW%: called strikes plus whiffs per pitch — for pitchers, higher is
  better; ~30% is excellent.
- BIP: classifiable balls in play behind the batted-ball rates (sample size).
- vsL/vsR: the same metrics split by opponent handedness.
- Missing values mean the sample was below the publication threshold.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeMonth  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <playerId> <question>",
	Short: "Analyze a player's advanced stats with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzePlayerCmd.Flags().StringVar(&analyzeMonth, "month", "", "month to analyze (YYYY-MM, required)")
	_ = analyzePlayerCmd.MarkFlagRequired("month")

	analyzeCmd.AddCommand(analyzePlayerCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	id, question := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	year, month, err := parseMonth(analyzeMonth)
	if err != nil {
		return err
	}

	store := pbpstore.New(dataDir)
	games, err := store.LoadMonth(year, month)
	if err != nil {
		return fmt.Errorf("load PBP for %s: %w", analyzeMonth, err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no play-by-play data for %s", analyzeMonth)
	}

	res := aggregator.Aggregate(games, cfg.Aggregator())

	contextJSON, err := buildPlayerContext(id, analyzeMonth, res)
	if err != nil {
		return err
	}

	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildPlayerContext serialises a player's computed views into compact JSON.
func buildPlayerContext(id, month string, res aggregator.Result) (string, error) {
	doc := map[string]any{
		"subject": "player",
		"id":      id,
		"month":   month,
	}

	addRole := func(role string, view aggregator.View) bool {
		overall, ok := view.Overall[id]
		if !ok {
			return false
		}
		if name := view.Names[id]; name != "" {
			doc["name"] = name
		}
		roleDoc := map[string]any{"overall": overall}
		if splits := view.Splits[id]; len(splits) > 0 {
			roleDoc["splits"] = splits
		}
		if levels := view.ByLevel[id]; len(levels) > 1 {
			roleDoc["byLevel"] = levels
		}
		roleDoc["games"] = len(view.PerGame[id])
		doc[role] = roleDoc
		return true
	}

	hasBatting := addRole("batting", res.Batting)
	hasPitching := addRole("pitching", res.Pitching)
	if !hasBatting && !hasPitching {
		return "", fmt.Errorf("no data found for player %s in %s", id, month)
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
