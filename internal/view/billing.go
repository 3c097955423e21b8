package view

// Plan is one subscription tier. Prices are monthly USD.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceUSD     int      `json:"price_usd"`
	WebsiteLimit int      `json:"website_limit"`
	PageLimit    int      `json:"page_limit"`
	Features     []string `json:"features"`
	Highlighted  bool     `json:"highlighted"`
}

// Plans returns the subscription catalog. The catalog is static; billing
// itself is handled outside this service.
func Plans() []Plan {
	return []Plan{
		{
			ID:           "free",
			Name:         "Free",
			PriceUSD:     0,
			WebsiteLimit: 1,
			PageLimit:    25,
			Features: []string{
				"1 website",
				"25 pages per scan",
				"Weekly scans",
				"Basic SEO reports",
			},
		},
		{
			ID:           "starter",
			Name:         "Starter",
			PriceUSD:     19,
			WebsiteLimit: 3,
			PageLimit:    100,
			Features: []string{
				"3 websites",
				"100 pages per scan",
				"Daily scans",
				"Content optimization",
				"Email reports",
			},
		},
		{
			ID:           "pro",
			Name:         "Pro",
			PriceUSD:     49,
			WebsiteLimit: 10,
			PageLimit:    500,
			Features: []string{
				"10 websites",
				"500 pages per scan",
				"Daily scans",
				"Content optimization",
				"Competitor tracking",
				"Priority support",
			},
			Highlighted: true,
		},
		{
			ID:           "agency",
			Name:         "Agency",
			PriceUSD:     149,
			WebsiteLimit: 50,
			PageLimit:    2000,
			Features: []string{
				"50 websites",
				"2000 pages per scan",
				"Daily scans",
				"Content optimization",
				"Competitor tracking",
				"White-label reports",
				"Dedicated support",
			},
		},
	}
}
