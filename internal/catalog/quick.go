package catalog

// QuickOil is an entry of the quick lye calculator's short oil list.
type QuickOil struct {
	Name string
	Sap  float64
}

// QuickOils are the NaOH sap values offered by the quick calculator.
var QuickOils = []QuickOil{
	{Name: "Almond Oil, Sweet", Sap: 0.136},
	{Name: "Apricot Kernel Oil", Sap: 0.135},
	{Name: "Avocado Oil", Sap: 0.133},
	{Name: "Babassu Oil", Sap: 0.175},
	{Name: "Beeswax", Sap: 0.069},
	{Name: "Castor Oil", Sap: 0.128},
	{Name: "Cocoa Butter", Sap: 0.137},
	{Name: "Coconut Oil, 76 deg", Sap: 0.190},
	{Name: "Grapeseed Oil", Sap: 0.126},
	{Name: "Hemp Oil", Sap: 0.135},
	{Name: "Jojoba Oil", Sap: 0.069},
	{Name: "Lard", Sap: 0.138},
	{Name: "Mango Butter", Sap: 0.137},
	{Name: "Olive Oil", Sap: 0.134},
	{Name: "Palm Oil", Sap: 0.141},
	{Name: "Rice Bran Oil", Sap: 0.128},
	{Name: "Shea Butter", Sap: 0.128},
	{Name: "Sunflower Oil", Sap: 0.134},
	{Name: "Tallow, Beef", Sap: 0.140},
}

// QuickOilByName finds a quick calculator oil.
func QuickOilByName(name string) (QuickOil, bool) {
	for _, o := range QuickOils {
		if o.Name == name {
			return o, true
		}
	}
	return QuickOil{}, false
}
