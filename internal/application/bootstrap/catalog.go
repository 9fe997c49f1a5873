package bootstrap

type catalogSeed struct {
	name      string
	category  string
	price     string
	stock     int
	threshold int
}

var initialCatalog = []catalogSeed{
	{"iPhone 15 Pro", "Smartphones", "4999.00", 15, 5},
	{"Samsung Galaxy S24", "Smartphones", "3999.00", 20, 5},
	{"MacBook Air M3", "Laptops", "5999.00", 10, 3},
	{"Dell XPS 15", "Laptops", "4500.00", 8, 3},
	{"iPad Pro 12.9", "Tablets", "4299.00", 12, 4},
	{"AirPods Pro 2", "Accesorios", "899.00", 30, 10},
	{"Apple Watch Series 9", "Smartwatches", "1899.00", 18, 5},
	{"Sony WH-1000XM5", "Accesorios", "1499.00", 25, 8},
	{"Logitech MX Master 3S", "Accesorios", "349.00", 40, 15},
	{`Samsung Monitor 27" 4K`, "Monitores", "1299.00", 15, 5},
}
