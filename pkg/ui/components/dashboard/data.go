package dashboard

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Metal is one quoted commodity.
type Metal struct {
	ID     string
	Symbol string
	Label  string
	Price  float64
	Prev   float64
	Unit   string
	LME    float64
	Kitco  float64
}

// Change is the absolute move against the previous close.
func (m Metal) Change() float64 {
	return m.Price - m.Prev
}

// ChangePercent is the move against the previous close in percent.
func (m Metal) ChangePercent() float64 {
	if m.Prev == 0 {
		return 0
	}
	return m.Change() / m.Prev * 100
}

// Up reports whether the price did not fall.
func (m Metal) Up() bool {
	return m.Change() >= 0
}

// SourceSpread is the absolute gap between the two quote sources.
func (m Metal) SourceSpread() float64 {
	return math.Abs(m.LME - m.Kitco)
}

// TightSpread is the largest source gap still reported as tight.
const TightSpread = 15

// Urgency ranks how soon a recommendation should be acted on.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Label returns the badge text for u.
func (u Urgency) Label() string {
	switch u {
	case UrgencyHigh:
		return "● BUY NOW"
	case UrgencyMedium:
		return "◉ MONITOR"
	default:
		return "○ WAIT"
	}
}

// Recommendation is a pre-computed order timing suggestion.
type Recommendation struct {
	Metal          string
	Symbol         string
	Urgency        Urgency
	Confidence     int
	CurrentPrice   float64
	ProjectedPrice float64
	PriceRisk      string
	Window         string
	Qty            string
	Rationale      string
}

// Metals is the static quote board.
var Metals = []Metal{
	{ID: "copper", Symbol: "CU", Label: "Copper", Price: 9412, Prev: 9245, Unit: "$/MT", LME: 9412, Kitco: 9408},
	{ID: "aluminium", Symbol: "AL", Label: "Aluminium", Price: 2287, Prev: 2301, Unit: "$/MT", LME: 2287, Kitco: 2289},
	{ID: "nickel", Symbol: "NI", Label: "Nickel", Price: 15840, Prev: 15360, Unit: "$/MT", LME: 15840, Kitco: 15855},
	{ID: "zinc", Symbol: "ZN", Label: "Zinc", Price: 2741, Prev: 2774, Unit: "$/MT", LME: 2741, Kitco: 2738},
}

// Recommendations are shown as cards under the quote board.
var Recommendations = []Recommendation{
	{
		Metal: "Copper", Symbol: "CU", Urgency: UrgencyHigh, Confidence: 87,
		CurrentPrice: 9412, ProjectedPrice: 9820, PriceRisk: "+4.3%",
		Window: "Feb – Mar 2025", Qty: "500 MT",
		Rationale: "Price trending upward +8% over 6 months. PCL requirement of 500 MT due Mar. Lock in now before Q2 surge.",
	},
	{
		Metal: "Aluminium", Symbol: "AL", Urgency: UrgencyLow, Confidence: 72,
		CurrentPrice: 2287, ProjectedPrice: 2235, PriceRisk: "−2.3%",
		Window: "Apr 2025", Qty: "200 MT",
		Rationale: "Forecast shows a dip in Mar–Apr. Defer order by 6–8 weeks to capitalize on lower prices.",
	},
	{
		Metal: "Nickel", Symbol: "NI", Urgency: UrgencyMedium, Confidence: 61,
		CurrentPrice: 15840, ProjectedPrice: 16200, PriceRisk: "+2.3%",
		Window: "Mar – Apr 2025", Qty: "80 MT",
		Rationale: "High volatility. Watch geopolitical signals. Set price alert at $15,500 to trigger buy.",
	},
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a whole-dollar price with thousands separators.
func FormatPrice(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// PricePoint is one month of the price chart. Zero fields are absent:
// history months have no forecast band, forecast months have no price.
type PricePoint struct {
	Month    string
	Price    float64
	Forecast float64
	Low      float64
	High     float64
}

// IsForecast reports whether p lies after the last settled price.
func (p PricePoint) IsForecast() bool {
	return p.Price == 0
}

// History holds six months of prices and a five-month forecast band per
// metal ID. The pivot month carries both.
var History = map[string][]PricePoint{
	"copper": {
		{Month: "Aug '24", Price: 8750},
		{Month: "Sep '24", Price: 8940},
		{Month: "Oct '24", Price: 9120},
		{Month: "Nov '24", Price: 9050},
		{Month: "Dec '24", Price: 9210},
		{Month: "Jan '25", Price: 9350},
		{Month: "Feb '25", Price: 9412, Forecast: 9412, Low: 9412, High: 9412},
		{Month: "Mar '25", Forecast: 9580, Low: 9300, High: 9860},
		{Month: "Apr '25", Forecast: 9740, Low: 9380, High: 10100},
		{Month: "May '25", Forecast: 9820, Low: 9300, High: 10340},
		{Month: "Jun '25", Forecast: 9680, Low: 9150, High: 10210},
		{Month: "Jul '25", Forecast: 9900, Low: 9250, High: 10550},
	},
	"aluminium": {
		{Month: "Aug '24", Price: 2080},
		{Month: "Sep '24", Price: 2120},
		{Month: "Oct '24", Price: 2190},
		{Month: "Nov '24", Price: 2210},
		{Month: "Dec '24", Price: 2240},
		{Month: "Jan '25", Price: 2268},
		{Month: "Feb '25", Price: 2287, Forecast: 2287, Low: 2287, High: 2287},
		{Month: "Mar '25", Forecast: 2260, Low: 2200, High: 2320},
		{Month: "Apr '25", Forecast: 2235, Low: 2160, High: 2310},
		{Month: "May '25", Forecast: 2250, Low: 2150, High: 2350},
		{Month: "Jun '25", Forecast: 2290, Low: 2180, High: 2400},
		{Month: "Jul '25", Forecast: 2320, Low: 2190, High: 2450},
	},
	"nickel": {
		{Month: "Aug '24", Price: 14200},
		{Month: "Sep '24", Price: 14800},
		{Month: "Oct '24", Price: 15100},
		{Month: "Nov '24", Price: 15400},
		{Month: "Dec '24", Price: 15600},
		{Month: "Jan '25", Price: 15720},
		{Month: "Feb '25", Price: 15840, Forecast: 15840, Low: 15840, High: 15840},
		{Month: "Mar '25", Forecast: 16100, Low: 15200, High: 17000},
		{Month: "Apr '25", Forecast: 16400, Low: 15000, High: 17800},
		{Month: "May '25", Forecast: 16200, Low: 14800, High: 17600},
		{Month: "Jun '25", Forecast: 16800, Low: 15100, High: 18500},
		{Month: "Jul '25", Forecast: 17200, Low: 15400, High: 19000},
	},
	"zinc": {
		{Month: "Aug '24", Price: 2620},
		{Month: "Sep '24", Price: 2670},
		{Month: "Oct '24", Price: 2700},
		{Month: "Nov '24", Price: 2720},
		{Month: "Dec '24", Price: 2755},
		{Month: "Jan '25", Price: 2770},
		{Month: "Feb '25", Price: 2741, Forecast: 2741, Low: 2741, High: 2741},
		{Month: "Mar '25", Forecast: 2710, Low: 2640, High: 2780},
		{Month: "Apr '25", Forecast: 2680, Low: 2590, High: 2770},
		{Month: "May '25", Forecast: 2700, Low: 2580, High: 2820},
		{Month: "Jun '25", Forecast: 2730, Low: 2600, High: 2860},
		{Month: "Jul '25", Forecast: 2760, Low: 2610, High: 2910},
	},
}

// ProcurementMonth is one month of the PCL procurement plan in metric tons.
// Zero Actual means the month is still ahead; zero Recommended means no
// order is suggested.
type ProcurementMonth struct {
	Month       string
	Actual      int
	Required    int
	Recommended int
}

// Gap is actual minus required; only meaningful once Actual is known.
func (p ProcurementMonth) Gap() int {
	return p.Actual - p.Required
}

// Procurement is the plan shown under the price table.
var Procurement = []ProcurementMonth{
	{Month: "Aug '24", Actual: 320, Required: 300},
	{Month: "Sep '24", Actual: 410, Required: 380},
	{Month: "Oct '24", Actual: 280, Required: 310},
	{Month: "Nov '24", Actual: 490, Required: 450},
	{Month: "Dec '24", Actual: 370, Required: 360},
	{Month: "Jan '25", Actual: 430, Required: 400},
	{Month: "Feb '25", Actual: 310, Required: 340},
	{Month: "Mar '25", Required: 420, Recommended: 500},
	{Month: "Apr '25", Required: 380, Recommended: 380},
	{Month: "May '25", Required: 460, Recommended: 180},
}

// FormatTons renders a tonnage with thousands separators.
func FormatTons(v int) string {
	return printer.Sprintf("%d MT", v)
}
