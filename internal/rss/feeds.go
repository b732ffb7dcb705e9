package rss

// Category identifies one analysis feed: the route segment it is exposed
// under, the human-readable label stamped on its articles, and the feed URL.
type Category struct {
	Key   string
	Label string
	URL   string
}

// Investing.com analysis feeds, grouped by asset class.
var (
	StocksFeed = Category{
		Key:   "stocks",
		Label: "Stocks Analysis",
		URL:   "https://www.investing.com/rss/stock_Stocks.rss",
	}
	FuturesFeed = Category{
		Key:   "futures",
		Label: "Futures Analysis",
		URL:   "https://www.investing.com/rss/stock_Futures.rss",
	}
	StockFundamentalFeed = Category{
		Key:   "fundamental",
		Label: "Fundamental Analysis",
		URL:   "https://www.investing.com/rss/stock_Fundamental.rss",
	}
	StockTechnicalFeed = Category{
		Key:   "technical",
		Label: "Technical Analysis",
		URL:   "https://www.investing.com/rss/stock_Technical.rss",
	}

	CommodityTechnicalFeed = Category{
		Key:   "technical",
		Label: "Technical Analysis",
		URL:   "https://www.investing.com/rss/commodities_Technical.rss",
	}
	CommodityFundamentalFeed = Category{
		Key:   "fundamental",
		Label: "Fundamental Analysis",
		URL:   "https://www.investing.com/rss/commodities_Fundamental.rss",
	}
	MetalsFeed = Category{
		Key:   "metals",
		Label: "Metals Analysis",
		URL:   "https://www.investing.com/rss/commodities_Metals.rss",
	}
	EnergyFeed = Category{
		Key:   "energy",
		Label: "Energy Analysis",
		URL:   "https://www.investing.com/rss/commodities_Energy.rss",
	}

	IndicesFeed = Category{
		Key:   "indices",
		Label: "Indices Analysis",
		URL:   "https://www.investing.com/rss/stock_Indices.rss",
	}
	CryptoFeed = Category{
		Key:   "crypto",
		Label: "Crypto Analysis",
		URL:   "https://www.investing.com/rss/302.rss",
	}
)

// StockFeeds covers the four stock analysis flavours; a random pick across
// them backs the generic stock-analysis endpoint.
var StockFeeds = []Category{StocksFeed, FuturesFeed, StockFundamentalFeed, StockTechnicalFeed}

// CommodityFeeds covers the commodity analysis flavours, fetched together
// for the combined digest.
var CommodityFeeds = []Category{CommodityTechnicalFeed, CommodityFundamentalFeed, MetalsFeed, EnergyFeed}
