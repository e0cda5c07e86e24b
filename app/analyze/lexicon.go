package analyze

// Static lexicons consumed by the extractors and scorers. Kept as plain data
// tables so they can be tested and tuned independently of the matching logic.

// Tickers that collide with common English words are never accepted, no
// matter which pattern produced them.
var commonWordBlacklist = map[string]bool{
	"A": true, "I": true, "AN": true, "IN": true, "IT": true, "ON": true, "AT": true,
	"BE": true, "DO": true, "GO": true, "HI": true, "NO": true, "OK": true, "SO": true,
	"TO": true, "UP": true, "US": true,
	"ALL": true, "AND": true, "ARE": true, "BUT": true, "FOR": true, "HAD": true,
	"HAS": true, "HER": true, "HIS": true, "HOW": true, "ITS": true, "NEW": true,
	"NOT": true, "NOW": true, "ONE": true, "OUR": true, "OUT": true, "SAW": true,
	"SAY": true, "SHE": true, "THAT": true, "THE": true, "THEY": true, "WAS": true,
	"WAY": true, "WHO": true, "WHY": true, "YES": true, "YOU": true,
}

// Bare uppercase tokens are only accepted as tickers when they appear in this
// allowlist. Extending coverage beyond it would need a real ticker database;
// the precision/recall tradeoff is deliberate.
var majorTickers = map[string]bool{
	"AAPL": true, "MSFT": true, "GOOGL": true, "GOOG": true, "AMZN": true, "META": true,
	"TSLA": true, "NVDA": true, "JPM": true, "JNJ": true, "V": true, "PG": true, "UNH": true,
	"HD": true, "BAC": true, "XOM": true, "PFE": true, "CSCO": true, "ADBE": true,
	"NFLX": true, "CRM": true, "ORCL": true, "WMT": true, "DIS": true, "MA": true,
	"PYPL": true, "INTC": true, "T": true, "VZ": true, "KO": true, "PEP": true,
	"TMO": true, "ABT": true, "ABBV": true, "ACN": true, "COST": true, "LIN": true,
	"MDT": true, "NKE": true, "UPS": true, "LLY": true, "DHR": true, "WFC": true,
	"IBM": true, "TXN": true, "HON": true, "CVX": true, "MRK": true, "PLD": true,
	"AMGN": true, "COP": true, "NEE": true, "LOW": true, "ISRG": true, "SBUX": true,
	"AMD": true, "INTU": true, "GE": true, "DE": true, "MS": true, "GS": true,
	"CAT": true, "RTX": true, "BKNG": true, "AMAT": true, "AXP": true, "ADI": true,
	"SYK": true, "BLK": true, "GILD": true, "MDLZ": true, "CI": true, "EL": true,
	"EQIX": true, "TJX": true, "CDNS": true, "EOG": true, "SCHW": true, "SO": true,
	"SNPS": true, "PANW": true, "CMCSA": true, "MU": true, "ADP": true, "CSX": true,
	"BDX": true, "BIIB": true, "CL": true, "ITW": true, "CB": true, "ICE": true,
	"PGR": true, "USB": true, "APD": true, "NSC": true, "AON": true, "DUK": true,
	"LRCX": true, "FCX": true, "MCO": true, "MPC": true, "KMI": true, "ETN": true,
	"ECL": true, "EMR": true, "EXC": true, "AIG": true, "SPG": true, "ROK": true,
	"PH": true, "GD": true, "ORLY": true, "ADSK": true, "HCA": true, "CTAS": true,
	"FIS": true, "ANET": true, "MMM": true, "TGT": true, "SHW": true, "NOC": true,
	"LMT": true, "HUM": true, "DXCM": true, "O": true, "VLO": true, "BSX": true,
	"WM": true, "PNC": true, "ZTS": true, "CIEN": true, "D": true, "EQNR": true,
	"MCK": true, "COF": true, "ROP": true, "JCI": true, "SLB": true, "GM": true,
	"F": true, "BA": true, "RCL": true, "C": true, "DAL": true,
}

// Financial vocabulary looked for in a small window around a ticker match.
var tickerContextKeywords = []string{
	"stock", "share", "price", "market", "trading", "investor", "portfolio",
	"dividend", "revenue", "earnings", "profit", "loss", "buy", "sell",
	"analyst", "rating", "target", "forecast", "guidance", "quarterly",
	"annual", "financial", "fiscal", "ipo", "merger", "acquisition",
}

// Sentiment keyword tiers. Base scores: strong 3, moderate 2, weak 1.
var positiveKeywords = map[string][]string{
	"strong": {
		"surge", "soar", "jump", "rally", "boom", "bullish", "outperform", "upgrade", "record", "high",
		"exceptional", "outstanding", "excellent", "strong", "robust", "solid", "impressive", "remarkable",
		"breakthrough", "innovation", "growth", "expansion", "success", "triumph", "victory", "achievement",
		"profit", "profitable", "gain", "boost", "increase", "rise", "climb", "advance", "momentum",
	},
	"moderate": {
		"rise", "gain", "increase", "grow", "improve", "positive", "optimistic", "boost", "upbeat",
		"encouraging", "promising", "favorable", "good", "better", "progress", "recovery", "stability",
		"steady", "stable", "modest", "slight gain", "gradual", "incremental", "satisfactory", "decent",
	},
	"weak": {
		"steady", "stable", "modest", "slight gain", "gradual", "slow", "moderate", "acceptable",
		"sufficient", "adequate", "reasonable", "fair", "neutral", "balanced", "mixed", "varied",
	},
}

var negativeKeywords = map[string][]string{
	"strong": {
		"crash", "plunge", "slump", "tumble", "bearish", "downgrade", "crisis", "recession", "collapse",
		"devastating", "catastrophic", "disastrous", "severe", "critical", "urgent", "alarming", "worrisome",
		"bankruptcy", "failure", "loss", "lose", "disaster", "turmoil", "chaos", "panic", "meltdown",
	},
	"moderate": {
		"fall", "drop", "decline", "decrease", "loss", "negative", "pessimistic", "cut", "reduce",
		"concern", "worry", "risk", "threat", "challenge", "difficulty", "struggle", "pressure", "stress",
		"declining", "falling", "decreasing", "weakening", "slowing", "deteriorating", "worsening",
	},
	"weak": {
		"slip", "dip", "modest loss", "pressure", "concern", "caution", "uncertainty", "volatility",
		"fluctuation", "instability", "hesitation", "pause", "slowdown", "moderation", "correction",
	},
}

// Words that indicate financial impact; their presence scales both sentiment
// sums up.
var financialBoosters = []string{
	"earnings", "revenue", "profit", "loss", "margin", "outlook", "forecast", "guidance",
	"quarterly", "annual", "fiscal", "financial", "economic", "market", "stock", "share",
	"dividend", "yield", "valuation", "multiple", "estimate", "analyst", "rating", "target",
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "neither": true, "nor": true,
	"nothing": true, "nowhere": true, "hardly": true, "scarcely": true, "barely": true,
	"rarely": true, "seldom": true, "despite": true, "although": true, "however": true,
}

var amplifierWords = map[string]bool{
	"very": true, "extremely": true, "highly": true, "significantly": true,
	"substantially": true, "considerably": true, "remarkably": true, "exceptionally": true,
	"particularly": true, "especially": true, "really": true, "truly": true,
}

var diminisherWords = map[string]bool{
	"slightly": true, "somewhat": true, "moderately": true, "partially": true,
	"minimally": true, "marginally": true, "relatively": true, "comparatively": true,
	"barely": true, "hardly": true,
}

// Category keyword lists matched against title + summary.
var categoryKeywords = map[string][]string{
	"Markets": {
		"market", "index", "dow", "s&p", "nasdaq", "trading", "stocks", "equities", "bull", "bear",
		"rally", "slump", "volatility", "session", "close", "open", "high", "low", "volume",
	},
	"Economy": {
		"economy", "economic", "fed", "federal reserve", "inflation", "interest rates", "gdp",
		"employment", "jobs", "unemployment", "recession", "stimulus", "policy", "central bank",
	},
	"Commodities": {
		"oil", "gold", "silver", "copper", "commodity", "energy", "natural gas", "crude",
		"futures", "precious metals", "industrial metals", "agriculture", "wheat", "corn",
	},
	"Cryptocurrency": {
		"bitcoin", "crypto", "cryptocurrency", "ethereum", "blockchain", "digital currency",
		"altcoin", "mining", "exchange", "wallet", "defi", "nft", "web3",
	},
	"Banking": {
		"bank", "financial", "loan", "credit", "mortgage", "interest rate", "deposit",
		"lending", "investment bank", "commercial bank", "regional bank", "wall street",
	},
	"Technology": {
		"tech", "technology", "software", "ai", "artificial intelligence", "semiconductor",
		"chip", "cloud", "saas", "internet", "social media", "e-commerce", "big tech",
	},
	"Healthcare": {
		"pharma", "biotech", "health", "medical", "drug", "fda", "healthcare", "pharmaceutical",
		"clinical trial", "treatment", "therapy", "hospital", "insurance", "medical device",
	},
	"Automotive": {
		"auto", "car", "vehicle", "ev", "electric vehicle", "tesla", "ford", "gm", "toyota",
		"automotive", "manufacturing", "assembly", "dealership", "autonomous", "self-driving",
	},
	"Retail": {
		"retail", "consumer", "shopping", "sales", "revenue", "earnings", "quarterly",
		"customer", "store", "mall", "e-commerce", "amazon", "walmart", "target", "costco",
	},
	"Business": {
		"business", "company", "corporate", "merger", "acquisition", "ipo", "earnings",
		"revenue", "profit", "loss", "ceo", "executive", "management", "strategy",
	},
}

// Distinct financial keywords counted toward the relevance score.
var relevanceKeywords = []string{
	"earnings", "revenue", "profit", "loss", "merger", "acquisition", "ipo",
	"dividend", "buyback", "guidance", "forecast", "analyst", "upgrade", "downgrade",
}
