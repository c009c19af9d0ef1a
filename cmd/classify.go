package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/burnlikeash/SentimentScope/internal/classify"
	"github.com/burnlikeash/SentimentScope/internal/config"
)

var flagClassifyStatus bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Run a piece of text through the sentiment classifier",
	Long: `Send text to the ML service and print the sentiment verdict, confidence,
and extracted topics. With --status, print the service's processing counters instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client := classify.NewClient(cfg.ClassifierURL, cfg.RequestTimeoutDuration())
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeoutDuration())
		defer cancel()

		if flagClassifyStatus {
			status, err := client.ProcessingStatus(ctx)
			if err != nil {
				return fmt.Errorf("fetching status: %w", err)
			}
			fmt.Printf("Reviews: %d total, %d analyzed, %d pending (%.1f%%)\n",
				status.TotalReviews, status.ProcessedSentiments, status.UnprocessedReviews, status.SentimentPercentage)
			fmt.Printf("Topics: %d modeled\n", status.TotalTopics)
			return nil
		}

		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("nothing to classify; pass text as arguments")
		}

		result, err := client.Classify(ctx, text)
		if err != nil {
			return fmt.Errorf("classifying: %w", err)
		}

		fmt.Printf("Sentiment: %s (%.0f%% confidence)\n", result.Sentiment, result.Confidence*100)
		if len(result.Topics) > 0 {
			fmt.Printf("Topics: %s\n", strings.Join(result.Topics, ", "))
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&flagClassifyStatus, "status", false, "show the ML service's processing counters")
}
