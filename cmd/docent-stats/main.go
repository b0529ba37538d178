package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ingelean/docent/internal/analytics"
	"github.com/ingelean/docent/internal/sentiment"
)

// docent-stats prints the dashboard aggregate for a chat log, for quick
// inspection without the running service.
func main() {
	path := flag.String("log", "chat_logs.jsonl", "path to the chat log")
	flag.Parse()

	summary, err := analytics.SummarizeFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docent-stats: %v\n", err)
		os.Exit(1)
	}

	if summary.NoData() {
		fmt.Println("no rated conversations yet")
		return
	}

	fmt.Printf("conversations: %d\n", summary.TotalConversations)
	fmt.Printf("avg rating:    %s\n", summary.AvgRatingDisplay())
	fmt.Printf("avg turns:     %s\n", summary.AvgTurnsDisplay())

	fmt.Println("ratings:")
	for rating := 1; rating <= 5; rating++ {
		if count := summary.RatingDistribution[rating]; count > 0 {
			fmt.Printf("  %d stars: %d\n", rating, count)
		}
	}

	fmt.Println("sentiments:")
	labels := []string{sentiment.Positive, sentiment.Negative, sentiment.Neutral, analytics.SentimentUnknown}
	for _, label := range labels {
		if count := summary.SentimentDistribution[label]; count > 0 {
			fmt.Printf("  %s: %d\n", label, count)
		}
	}
}
