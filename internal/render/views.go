package render

import (
	"github.com/ginjaninja78/sales-reporter/internal/command"
	"github.com/ginjaninja78/sales-reporter/internal/report"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/shopspring/decimal"
)

// The view types are the serialized shape of each report for JSON and YAML.
// Money is always written with two decimals.

type hourlyView struct {
	Report string     `json:"report" yaml:"report"`
	Range  string     `json:"range,omitempty" yaml:"range,omitempty"`
	Total  string     `json:"total" yaml:"total"`
	Hours  []hourView `json:"hours" yaml:"hours"`
}

type hourView struct {
	Hour    int    `json:"hour" yaml:"hour"`
	Revenue string `json:"revenue" yaml:"revenue"`
}

type dailyView struct {
	Report       string    `json:"report" yaml:"report"`
	Shop         string    `json:"shop" yaml:"shop"`
	Transactions int       `json:"transactions" yaml:"transactions"`
	Total        string    `json:"total" yaml:"total"`
	Days         []dayView `json:"days" yaml:"days"`
}

type dayView struct {
	Day     string `json:"day" yaml:"day"`
	Revenue string `json:"revenue" yaml:"revenue"`
}

type cityView struct {
	Report    string   `json:"report" yaml:"report"`
	Dimension string   `json:"dimension" yaml:"dimension"`
	Extreme   string   `json:"extreme" yaml:"extreme"`
	Value     string   `json:"value" yaml:"value"`
	Cities    []string `json:"cities" yaml:"cities"`
}

type shopView struct {
	Report       string            `json:"report" yaml:"report"`
	Shop         string            `json:"shop" yaml:"shop"`
	Transactions []transactionView `json:"transactions" yaml:"transactions"`
}

type transactionView struct {
	ShopName string `json:"shopName" yaml:"shopName"`
	City     string `json:"city" yaml:"city"`
	Street   string `json:"street" yaml:"street"`
	Item     string `json:"item" yaml:"item"`
	DateTime string `json:"dateTime" yaml:"dateTime"`
	Price    string `json:"price" yaml:"price"`
}

const (
	hourlyReport = "hourlyRevenue"
	dailyReport  = "dailyRevenue"
	cityReport   = "cityExtreme"
	shopReport   = "shopTransactions"
)

// money renders a computed total with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// price renders a transaction price with at least two decimals and every
// digit the source carried.
func price(d decimal.Decimal) string {
	return d.StringFixed(max(2, -d.Exponent()))
}

func newHourlyView(r report.HourlyRevenue) hourlyView {
	v := hourlyView{
		Report: hourlyReport,
		Total:  money(r.Total()),
		Hours:  make([]hourView, 0, len(r.Hours)),
	}
	if r.Range != nil {
		v.Range = r.Range.String()
	}
	for _, h := range r.Hours {
		v.Hours = append(v.Hours, hourView{Hour: h.Hour, Revenue: money(h.Total)})
	}
	return v
}

func newDailyView(r report.DailyRevenue) dailyView {
	v := dailyView{
		Report:       dailyReport,
		Shop:         r.Shop,
		Transactions: r.Transactions,
		Days:         make([]dayView, 0, len(r.Days)),
	}
	total := decimal.Zero
	for _, d := range r.Days {
		total = total.Add(d.Total)
		v.Days = append(v.Days, dayView{Day: d.Weekday.String(), Revenue: money(d.Total)})
	}
	v.Total = money(total)
	return v
}

func newCityView(r report.CityExtreme) cityView {
	value := r.Value.String()
	if r.Dimension == command.Money {
		value = money(r.Value)
	}
	cities := r.Cities
	if cities == nil {
		cities = []string{}
	}
	return cityView{
		Report:    cityReport,
		Dimension: r.Dimension.String(),
		Extreme:   r.Extreme.String(),
		Value:     value,
		Cities:    cities,
	}
}

func newShopView(s report.ShopTransactions) shopView {
	v := shopView{
		Report:       shopReport,
		Shop:         s.Shop,
		Transactions: make([]transactionView, 0, len(s.Transactions)),
	}
	for _, t := range s.Transactions {
		v.Transactions = append(v.Transactions, newTransactionView(t))
	}
	return v
}

func newTransactionView(t types.Transaction) transactionView {
	return transactionView{
		ShopName: t.ShopName,
		City:     t.City,
		Street:   t.Street,
		Item:     t.Item,
		DateTime: t.Timestamp.Format(types.TimestampLayout),
		Price:    price(t.Price),
	}
}
