package catalog

// Tab is a category filter of the recipe browser.
type Tab struct {
	ID          string
	Label       string
	Type        string
	Title       string
	Description string
	Image       string
}

// CalculatorTab is the tab id that shows the formulation calculator
// instead of a recipe grid.
const CalculatorTab = "calculator"

// Tabs lists the browser tabs in display order. The first is the default.
var Tabs = []Tab{
	{ID: "all", Label: "All", Title: "Natural Soap Recipes",
		Description: "A curated library of handcrafted recipes using only natural ingredients, oils, and botanicals.",
		Image:       "/static/images/hero-soap-making.jpg"},
	{ID: "hot", Label: "Hot Process", Type: "Hot Process", Title: "Hot Process Soaps",
		Description: "Rustic, textured soaps ready to use sooner. The hot process method speeds up saponification for a faster cure.",
		Image:       "/static/images/banner-hot-process.jpg"},
	{ID: "cold", Label: "Cold Process", Type: "Cold Process", Title: "Cold Process Soaps",
		Description: "Smooth, creamy bars with endless design possibilities. The traditional method for creating long-lasting natural soaps.",
		Image:       "/static/images/banner-cold-process.jpg"},
	{ID: "lotions", Label: "Lotions", Type: "Lotion", Title: "Natural Lotions & Creams",
		Description: "Luxurious homemade moisturizers using shea butter, cocoa butter, and nourishing plant oils.",
		Image:       "/static/images/header-lotions.jpg"},
	{ID: "scrubs", Label: "Scrubs", Type: "Scrub", Title: "Exfoliating Scrubs",
		Description: "Invigorating sugar and salt scrubs to exfoliate and soften skin, infused with essential oils.",
		Image:       "/static/images/header-scrubs.jpg"},
	{ID: "bath", Label: "Bath Bombs", Type: "Bath Bomb", Title: "Bath Bombs & Fizzies",
		Description: "Fun and fizzy bath treats that add color, scent, and skin-loving oils to your soak.",
		Image:       "/static/images/header-bath-bombs.jpg"},
	{ID: "remedies", Label: "Remedies", Type: "Remedies", Title: "Herbal Remedies",
		Description: "Healing salves, balms, and ointments made with infused herbal oils for natural wellness.",
		Image:       "/static/images/header-remedies.jpg"},
	{ID: "hair", Label: "Hair Care", Type: "Hair Care", Title: "Natural Hair Care",
		Description: "Gentle shampoo bars and conditioning oils free from harsh sulfates and synthetic chemicals.",
		Image:       "/static/images/header-hair-care.jpg"},
	{ID: CalculatorTab, Label: "Calculator", Title: "Soap Calculator",
		Description: "Work out lye, water and fragrance for your own oil blend.",
		Image:       "/static/images/hero-soap-making.jpg"},
}

// TabByID returns the tab with the given id, or the default tab.
func TabByID(id string) Tab {
	for _, t := range Tabs {
		if t.ID == id {
			return t
		}
	}
	return Tabs[0]
}

// Matches reports whether a recipe belongs under the tab. Tabs without a
// type, such as "all", match everything.
func (t Tab) Matches(r Recipe) bool {
	return t.Type == "" || r.Type == t.Type
}

// groupOrder is the order catalog groups are listed in.
var groupOrder = []string{
	"Hot Process",
	"Cold Process",
	"Lotions",
	"Scrubs",
	"Bath Bombs",
	"Remedies",
	"Hair Care",
}
