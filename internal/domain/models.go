package domain

// Category is the device category a sell flow is anchored to.
// Selected once at flow start and never changed.
type Category string

const (
	CategoryPhone  Category = "phone"
	CategoryLaptop Category = "laptop"
	CategoryTablet Category = "tablet"
)

func (c Category) Valid() bool {
	return c == CategoryPhone || c == CategoryLaptop || c == CategoryTablet
}

type Brand struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
	LogoPath string `db:"logo_path"`
	Active   bool   `db:"active"`
}

// Device is a sellable model. ReleaseDate drives phone/tablet age
// depreciation and is empty for laptops (laptop age is self-reported).
type Device struct {
	ID          string `db:"id"`
	BrandID     string `db:"brand_id"`
	Name        string `db:"name"`
	Series      string `db:"series"`
	ReleaseDate string `db:"release_date"` // YYYY-MM-DD, "" when unknown
	Active      bool   `db:"active"`
}

// Variant is a phone/tablet storage variant. BasePrice is whole rupees.
type Variant struct {
	ID        string `db:"id"`
	DeviceID  string `db:"device_id"`
	Storage   string `db:"storage"`
	BasePrice int64  `db:"base_price"`
}

// LaptopVariant is a faceted laptop configuration. Selection narrows
// processor -> RAM -> storage -> screen because the space is sparse.
type LaptopVariant struct {
	ID        string `db:"id"`
	DeviceID  string `db:"device_id"`
	Processor string `db:"processor"`
	RAM       string `db:"ram"`
	Storage   string `db:"storage"`
	Screen    string `db:"screen"`
}

type City struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
}

type Review struct {
	ID        string `db:"id"`
	Author    string `db:"author"`
	CityName  string `db:"city_name"`
	Rating    int    `db:"rating"`
	Body      string `db:"body"`
	Approved  bool   `db:"approved"`
	CreatedAt string `db:"created_at"`
}

type SystemSetting struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}
