package main

import "sorana/internal/icon"

type Product struct {
	Icon        icon.Kind
	Title       string
	Status      string
	Description string
}

type Phase struct {
	ID          string
	Title       string
	Description string
	Highlights  []string
	Icon        icon.Kind
}

type Milestone struct {
	Date        string
	Description string
}

type FAQItem struct {
	Question string
	Answer   string
}

type ContactChannel struct {
	Title       string
	Description string
	Email       string
}

// SocialKind tags a footer link with the network it points at, so the icon
// to draw is known when the link is built.
type SocialKind int

const (
	SocialInstagram SocialKind = iota
	SocialGitLab
	SocialX
)

func (k SocialKind) Label() string {
	switch k {
	case SocialInstagram:
		return "instagram"
	case SocialGitLab:
		return "gitlab"
	case SocialX:
		return "x"
	default:
		return "link"
	}
}

func (k SocialKind) Glyph() string {
	switch k {
	case SocialInstagram:
		return "◎"
	case SocialGitLab:
		return "◆"
	case SocialX:
		return "✕"
	default:
		return "→"
	}
}

type SocialLink struct {
	Kind SocialKind
	URL  string
}

var products = []Product{
	{
		Icon:        icon.Search,
		Title:       "sorana engine",
		Status:      "already in alpha",
		Description: "the decentralized search engine where users own their data and get real, human-driven results. no ads, no seo tricks, no tracking.",
	},
	{
		Icon:        icon.Globe,
		Title:       "sorana nexus",
		Status:      "coming soon",
		Description: "the decentralized browser built for privacy, with no ads, no trackers, and no censorship. the only browser you'll need to browse safely and freely.",
	},
	{
		Icon:        icon.Zap,
		Title:       "sorana orbit",
		Status:      "in development",
		Description: "the decentralized satellite mesh network that delivers true global internet, free from isp control. powered by the people, for the people.",
	},
}

var phases = []Phase{
	{
		ID:          "phase-1",
		Title:       "phase 1: sorana engine",
		Description: "revolutionize search with the first truly decentralized engine. powered by users, for users, sorana engine ensures your data remains yours while delivering unbiased, manipulation-free results.",
		Highlights: []string{
			"blockchain-based rewards with srt tokens",
			"no corporate ads or seo tricks",
			"decentralized search nodes and human-driven results",
		},
		Icon: icon.Search,
	},
	{
		ID:          "phase-2",
		Title:       "phase 2: sorana nexus",
		Description: "redefine your browsing experience with the world's first decentralized, privacy-first browser. sorana nexus puts you in control, rewarding you for your participation in this revolutionary ecosystem.",
		Highlights: []string{
			"privacy through decentralized hosting",
			"users hosting the content they browse",
			"srt tokens as a reward system",
		},
		Icon: icon.Globe,
	},
	{
		ID:          "phase-3",
		Title:       "phase 3: sorana orbit",
		Description: "envision a world with unrestricted internet access, free from isp control. sorana orbit creates a global, decentralized satellite mesh network, putting the power of connectivity in the hands of users worldwide.",
		Highlights: []string{
			"satellite-based mesh network, user-powered",
			"free internet access worldwide, no isp control",
			"users contributing to network infrastructure earn srt tokens",
		},
		Icon: icon.Satellite,
	},
}

var milestones = []Milestone{
	{Date: "Q2 2025", Description: "sorana engine launch: the dawn of decentralized search"},
	{Date: "Q4 2025", Description: "sorana nexus release: browsing reimagined, privacy amplified"},
	{Date: "Q1 2026", Description: "sorana orbit activation: the internet breaks free from earth's constraints"},
}

var contactChannels = []ContactChannel{
	{
		Title:       "invest in the future",
		Description: "sorana is open for pre-seed funding. the engine launches in q2 2025, nexus in q4 2025 and orbit in q1 2026.",
		Email:       "invest@sorana.io",
	},
	{
		Title:       "join our revolution",
		Description: "we don't want employees, we want revolutionaries ready to live and breathe decentralization.",
		Email:       "careers@sorana.io",
	},
	{
		Title:       "get real support",
		Description: "got a question or need help? no corporate runaround. we reply within 48 hours.",
		Email:       "support@sorana.io",
	},
}

var faqItems = []FAQItem{
	{
		Question: "what is sorana, and why is it revolutionary?",
		Answer:   "sorana is the first truly decentralized platform where users own their data and contributions. no corporate control, no data harvesting, and every contribution earns sorana reward tokens (srt).",
	},
	{
		Question: "how do i join the sorana team?",
		Answer:   "email careers@sorana.io and tell us how you can help build the future.",
	},
	{
		Question: "how will sorana make money without selling my data?",
		Answer:   "a 3% fee on srt transactions plus optional premium services. no ads and no data selling.",
	},
	{
		Question: "how decentralized is sorana?",
		Answer:   "sorana aims to be fully decentralized by early 2026, with decisions voted on by its users inside the platform.",
	},
	{
		Question: "what blockchain does sorana use?",
		Answer:   "srt lives on the polygon blockchain for its speed, scalability and low transaction costs.",
	},
	{
		Question: "what countries are part of sorana's global team?",
		Answer:   "our team is as borderless as the internet we're building, with members from turkey, palestine, ukraine, india, canada and more.",
	},
	{
		Question: "how do i join the alpha?",
		Answer:   "run `sorana signup --email you@example.com` and we'll let you in as soon as a seat opens.",
	},
}

var socialLinks = []SocialLink{
	{Kind: SocialInstagram, URL: "https://instagram.com/sorana.web"},
	{Kind: SocialGitLab, URL: "https://gitlab.com/sorana_web"},
	{Kind: SocialX, URL: "https://x.com/sorana_web"},
}

const (
	tagline   = "decentralizing the web, one search at a time."
	copyright = "© 2024 PlawLabs Ltd, London, UK. all rights reserved."
)
