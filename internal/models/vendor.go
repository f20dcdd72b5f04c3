package models

// Selectors is the CSS selector set that describes how a vendor renders its
// weekly menu page. All values are plain CSS selectors except DateAttribute,
// which names the attribute on a date button carrying its calendar date.
type Selectors struct {
	FoodTitle     string `json:"food_title"     yaml:"food_title"`
	FoodContainer string `json:"food_container" yaml:"food_container"`
	Category      string `json:"category"       yaml:"category"`
	DateButton    string `json:"date_button"    yaml:"date_button"`
	AddButton     string `json:"add_button"     yaml:"add_button"`
	DateAttribute string `json:"date_attribute" yaml:"date_attribute"`
}

// VendorConfig describes one food vendor site. Vendor variation is pure
// configuration: the same matching engine runs against every vendor, only the
// selector set and hostname differ.
type VendorConfig struct {
	ID        string    `json:"id"        yaml:"id"`
	Name      string    `json:"name"      yaml:"name"`
	Hostname  string    `json:"hostname"  yaml:"hostname"`
	MenuURL   string    `json:"menu_url"  yaml:"menu_url"`
	Selectors Selectors `json:"selectors" yaml:"selectors"`
}
