package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/richtv/market-content-api/internal/config"
	"github.com/richtv/market-content-api/internal/rss"
	"github.com/richtv/market-content-api/internal/scrape"
	"github.com/richtv/market-content-api/internal/service"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "market-content",
		Short: "Market Content CLI",
		Long: `CLI for the market content services.
Fetches quotes, windowed history, price changes, headlines and analysis
articles straight from the provider, without the HTTP layer.`,
	}

	var quoteCmd = &cobra.Command{
		Use:   "quote [symbol]",
		Short: "Fetch a real-time quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, _ := cmd.Flags().GetString("asset")
			return runQuote(args[0], asset)
		},
	}
	quoteCmd.Flags().StringP("asset", "a", "stock", "Asset class: stock, crypto, index, commodity")

	var historyCmd = &cobra.Command{
		Use:   "history [symbol]",
		Short: "Fetch windowed price history",
		Long: `Fetches day-granularity history for the trailing --days window, or
hour-granularity rows filtered to the trailing --hours window.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			hours, _ := cmd.Flags().GetFloat64("hours")
			asset, _ := cmd.Flags().GetString("asset")
			return runHistory(args[0], asset, days, hours)
		},
	}
	historyCmd.Flags().IntP("days", "d", 0, "Trailing window in days")
	historyCmd.Flags().Float64P("hours", "H", 0, "Trailing window in hours")
	historyCmd.Flags().StringP("asset", "a", "stock", "Asset class: stock, crypto, index")

	var changesCmd = &cobra.Command{
		Use:   "changes [symbol]",
		Short: "Fetch the stock price-change horizons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChanges(args[0])
		},
	}

	var calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Fetch the economic calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			count, _ := cmd.Flags().GetInt("count")
			return runCalendar(days, count)
		},
	}
	calendarCmd.Flags().IntP("days", "d", 7, "Trailing window in days")
	calendarCmd.Flags().IntP("count", "c", 0, "Random sample size (0 = all events)")

	var headlinesCmd = &cobra.Command{
		Use:   "headlines",
		Short: "Fetch today's trusted financial headlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			return runHeadlines(count)
		},
	}
	headlinesCmd.Flags().IntP("count", "c", 0, "Random sample size (0 = all headlines)")

	var articleCmd = &cobra.Command{
		Use:   "article [category]",
		Short: "Fetch a random analysis article",
		Long:  `Categories: stocks, futures, fundamental, technical, metals, energy, indices, crypto.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticle(args[0])
		},
	}

	var sectorsCmd = &cobra.Command{
		Use:   "sectors",
		Short: "Scrape the sectors overview board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSectors()
		},
	}

	rootCmd.AddCommand(quoteCmd, historyCmd, changesCmd, calendarCmd, headlinesCmd, articleCmd, sectorsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newClient() *upstream.Client {
	cfg := config.Load()
	return upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, cfg.UpstreamTimeout)
}

func cliContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runQuote(symbol, asset string) error {
	ctx, cancel := cliContext()
	defer cancel()

	client := newClient()

	var (
		records []timeseries.Record
		err     error
	)
	switch asset {
	case "stock":
		records, err = service.NewStockService(client, nil, 0).RealTimeQuote(ctx, symbol)
	case "crypto":
		records, err = service.NewCryptoService(client, nil, 0).RealTimeQuote(ctx, symbol)
	case "index":
		records, err = service.NewIndexService(client, nil, 0).RealTimeQuote(ctx, symbol)
	case "commodity":
		records, err = service.NewCommodityService(client, nil, 0).RealTimeQuote(ctx, symbol)
	default:
		return fmt.Errorf("unknown asset class %q", asset)
	}
	if err != nil {
		return err
	}
	return printJSON(records)
}

func runHistory(symbol, asset string, days int, hours float64) error {
	if days == 0 && hours == 0 {
		return fmt.Errorf("either --days or --hours is required")
	}

	ctx, cancel := cliContext()
	defer cancel()

	client := newClient()

	type history interface {
		HistoricalDaily(ctx context.Context, symbol string, days int, from, to string) ([]timeseries.Record, error)
		HistoricalByHours(ctx context.Context, symbol string, hours float64) ([]timeseries.Record, error)
	}

	var svc history
	switch asset {
	case "stock":
		svc = service.NewStockService(client, nil, 0)
	case "crypto":
		svc = service.NewCryptoService(client, nil, 0)
	case "index":
		svc = service.NewIndexService(client, nil, 0)
	default:
		return fmt.Errorf("unknown asset class %q", asset)
	}

	var (
		records []timeseries.Record
		err     error
	)
	if hours > 0 {
		records, err = svc.HistoricalByHours(ctx, symbol, hours)
	} else {
		records, err = svc.HistoricalDaily(ctx, symbol, days, "", "")
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d rows\n", len(records))
	return printJSON(records)
}

func runChanges(symbol string) error {
	ctx, cancel := cliContext()
	defer cancel()

	changes, err := service.NewStockService(newClient(), nil, 0).PriceChanges(ctx, symbol)
	if err != nil {
		return err
	}
	if changes == nil {
		return fmt.Errorf("no price change data for %s", symbol)
	}
	return printJSON(changes)
}

func runCalendar(days, count int) error {
	ctx, cancel := cliContext()
	defer cancel()

	macro := service.NewMacroService(newClient())

	var (
		records []timeseries.Record
		err     error
	)
	if count > 0 {
		records, err = macro.RandomCalendarRecords(ctx, days, count)
	} else {
		records, err = macro.EconomicCalendar(ctx, days)
	}
	if err != nil {
		return err
	}
	return printJSON(records)
}

func runHeadlines(count int) error {
	ctx, cancel := cliContext()
	defer cancel()

	cfg := config.Load()
	news := service.NewNewsService(newClient(), nil, cfg.NewsCacheTTL)

	var (
		records []timeseries.Record
		err     error
	)
	if count > 0 {
		records, err = news.RandomHeadlines(ctx, count)
	} else {
		records, err = news.TodayHeadlines(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(records)
}

func runArticle(category string) error {
	cats := map[string]rss.Category{
		"stocks":      rss.StocksFeed,
		"futures":     rss.FuturesFeed,
		"fundamental": rss.StockFundamentalFeed,
		"technical":   rss.StockTechnicalFeed,
		"metals":      rss.MetalsFeed,
		"energy":      rss.EnergyFeed,
		"indices":     rss.IndicesFeed,
		"crypto":      rss.CryptoFeed,
	}
	cat, ok := cats[category]
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}

	ctx, cancel := cliContext()
	defer cancel()

	cfg := config.Load()
	article, info, err := rss.NewFetcher(cfg.RSSTimeout, cfg.RSSMaxArticles).Random(ctx, cat)
	if err != nil {
		return err
	}

	return printJSON(map[string]any{"article": article, "feedInfo": info})
}

func runSectors() error {
	ctx, cancel := cliContext()
	defer cancel()

	cfg := config.Load()
	scraper := scrape.NewSectorScraper(cfg.UpstreamTimeout, scrape.NewMemoryCache(cfg.ScrapeTTL, nil))

	payload, err := scraper.All(ctx)
	if err != nil {
		return err
	}
	return printJSON(payload)
}
