package render

import (
	"strconv"

	"github.com/ginjaninja78/sales-reporter/internal/xmlwriter"
)

// XML STRUCTURE:
//
//   <hourlyRevenue range="20:00-00:00" total="11.67">
//     <hour value="20">1.57</hour>
//   </hourlyRevenue>
//
//   <dailyRevenue shop="Aibe" transactions="2" total="10.07">
//     <day name="Monday">10.00</day>
//   </dailyRevenue>
//
//   <cityExtreme dimension="money" extreme="max" value="10.07">
//     <city>Vilnius</city>
//   </cityExtreme>
//
//   <shopTransactions shop="Aibe">
//     <transaction>
//       <shopName>Aibe</shopName>
//       ...
//     </transaction>
//   </shopTransactions>

func hourlyElement(v hourlyView) *xmlwriter.Element {
	root := &xmlwriter.Element{Name: v.Report}
	if v.Range != "" {
		root.Attr("range", v.Range)
	}
	root.Attr("total", v.Total)

	for _, h := range v.Hours {
		root.Add(xmlwriter.NewElement("hour", h.Revenue).Attr("value", strconv.Itoa(h.Hour)))
	}
	return root
}

func dailyElement(v dailyView) *xmlwriter.Element {
	root := (&xmlwriter.Element{Name: v.Report}).
		Attr("shop", v.Shop).
		Attr("transactions", strconv.Itoa(v.Transactions)).
		Attr("total", v.Total)

	for _, d := range v.Days {
		root.Add(xmlwriter.NewElement("day", d.Revenue).Attr("name", d.Day))
	}
	return root
}

func cityElement(v cityView) *xmlwriter.Element {
	root := (&xmlwriter.Element{Name: v.Report}).
		Attr("dimension", v.Dimension).
		Attr("extreme", v.Extreme).
		Attr("value", v.Value)

	for _, city := range v.Cities {
		root.Add(xmlwriter.NewElement("city", city))
	}
	return root
}

func shopElement(v shopView) *xmlwriter.Element {
	root := (&xmlwriter.Element{Name: v.Report}).Attr("shop", v.Shop)

	for _, t := range v.Transactions {
		root.Add((&xmlwriter.Element{Name: "transaction"}).Add(
			xmlwriter.NewElement("shopName", t.ShopName),
			xmlwriter.NewElement("city", t.City),
			xmlwriter.NewElement("street", t.Street),
			xmlwriter.NewElement("item", t.Item),
			xmlwriter.NewElement("dateTime", t.DateTime),
			xmlwriter.NewElement("price", t.Price),
		))
	}
	return root
}
