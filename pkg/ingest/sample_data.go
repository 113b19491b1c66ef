package ingest

import "time"

// SampleArticles is the offline seed corpus used when every feed fails,
// so the pipeline can still initialize and answer questions in dev and CI.
func SampleArticles() []Article {
	now := time.Now()
	samples := []struct {
		title, content, link, source, category string
	}{
		{
			title:    "Global Leaders Convene for Climate Summit in Geneva",
			content:  "Representatives from over 190 countries gathered in Geneva this week for a climate summit focused on accelerating the transition away from fossil fuels. Delegates debated binding emission targets for 2035, with developing nations pressing wealthier countries for larger adaptation funds. Several major economies announced new commitments to triple renewable energy capacity by the end of the decade, though negotiators cautioned that enforcement mechanisms remain the central sticking point.",
			link:     "https://example.com/news/climate-summit-geneva",
			source:   "Sample Wire",
			category: "world",
		},
		{
			title:    "Chipmakers Race to Meet Surging Demand for AI Accelerators",
			content:  "Semiconductor manufacturers are expanding fabrication capacity as demand for AI accelerator chips continues to outpace supply. Industry analysts estimate data center operators will spend record amounts on GPU clusters this year, driven by large language model training and inference workloads. Foundries in Taiwan, South Korea, and the United States have announced new plants, but lead times for advanced packaging remain a bottleneck expected to persist into next year.",
			link:     "https://example.com/news/ai-chip-demand",
			source:   "Sample Wire",
			category: "technology",
		},
		{
			title:    "Open Source Community Ships Major Release of Popular Web Framework",
			content:  "The maintainers of a widely used open source web framework released a major version this week, bringing faster server-side rendering, a simplified data-loading API, and first-class support for edge deployment. Contributors highlighted a two-year migration effort to rewrite the compiler, which the team says cuts cold start times roughly in half. Early adopters report smooth upgrades, although some plugin authors are still updating for the new module format.",
			link:     "https://example.com/news/web-framework-release",
			source:   "Sample Wire",
			category: "technology",
		},
		{
			title:    "Central Banks Hold Rates Steady as Inflation Cools",
			content:  "Several major central banks kept interest rates unchanged this month, citing continued progress on inflation alongside signs of a softening labor market. Policymakers signaled that cuts remain possible later in the year if price growth keeps trending toward target. Equity markets rallied on the announcements, while bond yields eased. Economists remain divided on how quickly easing will proceed, pointing to persistent services inflation in several regions.",
			link:     "https://example.com/news/central-banks-rates",
			source:   "Sample Wire",
			category: "business",
		},
		{
			title:    "Startup Funding Rebounds With Focus on Applied AI and Climate Tech",
			content:  "Venture capital activity picked up in the latest quarter, led by investments in applied AI companies and climate technology startups. Deal data shows early-stage rounds recovering faster than growth-stage financing, with investors favoring companies that demonstrate near-term revenue. Founders report that diligence cycles remain longer than during the previous boom, and valuations, while improved, have not returned to their earlier peaks.",
			link:     "https://example.com/news/vc-funding-rebound",
			source:   "Sample Wire",
			category: "business",
		},
		{
			title:    "Underdogs Stun Champions in Dramatic Cup Final Shootout",
			content:  "A penalty shootout decided one of the most dramatic cup finals in recent memory, as the underdogs overcame the defending champions after a two-all draw through extra time. The winning goalkeeper saved twice in the shootout and was named player of the match. The result caps a remarkable season for the club, which was playing in the second division only three years ago and now qualifies for continental competition for the first time.",
			link:     "https://example.com/news/cup-final-shootout",
			source:   "Sample Wire",
			category: "sports",
		},
		{
			title:    "Marathon World Record Falls as New Training Methods Take Hold",
			content:  "The men's marathon world record fell this weekend, with the winner crediting a training regimen built around altitude cycles and carbon-plated footwear. Sports scientists note that record progression in distance running has accelerated over the past decade, driven by advances in nutrition, pacing strategy, and shoe technology. Organizers confirmed the course and conditions met ratification requirements, and the record is expected to be certified within weeks.",
			link:     "https://example.com/news/marathon-record",
			source:   "Sample Wire",
			category: "sports",
		},
		{
			title:    "Researchers Report Progress on Universal Flu Vaccine Candidate",
			content:  "A vaccine candidate designed to protect against a broad range of influenza strains showed promising results in an early-stage clinical trial, researchers reported. The approach targets a stable region of the virus rather than the fast-mutating surface proteins used by seasonal vaccines. Participants developed durable antibody responses with no serious side effects. Larger trials are planned to determine whether the protection holds across seasons and age groups.",
			link:     "https://example.com/news/universal-flu-vaccine",
			source:   "Sample Wire",
			category: "health",
		},
		{
			title:    "New Deep Sea Expedition Maps Unexplored Trench Ecosystems",
			content:  "An international research expedition has completed the most detailed mapping yet of a deep ocean trench, documenting dozens of species previously unknown to science. Using autonomous submersibles, the team recorded organisms thriving near hydrothermal vents at depths beyond six thousand meters. Scientists say the findings expand understanding of how life adapts to extreme pressure and could inform debates over proposed deep sea mining regulations.",
			link:     "https://example.com/news/deep-sea-expedition",
			source:   "Sample Wire",
			category: "world",
		},
		{
			title:    "Electric Vehicle Sales Cross Milestone as Charging Networks Expand",
			content:  "Electric vehicles accounted for a record share of new car sales last quarter, according to industry figures, helped by falling battery prices and a wave of more affordable models. Charging networks continue to expand along major highway corridors, easing range anxiety for longer trips. Automakers cautioned that growth is uneven across regions, with adoption fastest in markets that pair purchase incentives with dense public charging.",
			link:     "https://example.com/news/ev-sales-milestone",
			source:   "Sample Wire",
			category: "business",
		},
	}

	articles := make([]Article, 0, len(samples))
	for i, s := range samples {
		a := Article{
			ID:          ArticleID("", s.link),
			Title:       s.title,
			Description: s.content[:min(len(s.content), 300)],
			Content:     s.content,
			Link:        s.link,
			PubDate:     now.Add(-time.Duration(i) * time.Hour),
			Source:      s.source,
			Category:    s.category,
		}
		a.ContentLength = len(a.Content)
		articles = append(articles, a)
	}
	return articles
}
