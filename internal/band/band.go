package band

// Range is an inclusive frequency allocation in kHz.
type Range struct {
	LowKHz  float64
	HighKHz float64
	Name    string
}

// Contains reports whether f lies within the inclusive bounds of the range.
func (r Range) Contains(fKHz float64) bool {
	return fKHz >= r.LowKHz && fKHz <= r.HighKHz
}

// Table is an ordered list of non-overlapping ranges sorted ascending by LowKHz.
type Table []Range

// Standard is the amateur band plan used for spot filtering and contact logging.
var Standard = Table{
	{135.7, 137.8, "2190M"},
	{472.0, 479.0, "630M"},
	{501.0, 504.0, "560M"},
	{1800.0, 2000.0, "160M"},
	{3500.0, 4000.0, "80M"},
	{5060.0, 5450.0, "60M"},
	{7000.0, 7300.0, "40M"},
	{10100.0, 10150.0, "30M"},
	{14000.0, 14350.0, "20M"},
	{18068.0, 18168.0, "17M"},
	{21000.0, 21450.0, "15M"},
	{24890.0, 24990.0, "12M"},
	{28000.0, 29700.0, "10M"},
	{50000.0, 54000.0, "6M"},
	{70000.0, 71000.0, "4M"},
	{144000.0, 148000.0, "2M"},
	{222000.0, 225000.0, "1.25M"},
	{420000.0, 450000.0, "70CM"},
	{902000.0, 928000.0, "33CM"},
	{1240000.0, 1300000.0, "23CM"},
	{2300000.0, 2450000.0, "13CM"},
	{3300000.0, 3500000.0, "9CM"},
	{5650000.0, 5925000.0, "6CM"},
	{10000000.0, 10500000.0, "3CM"},
	{24000000.0, 24250000.0, "1.25CM"},
	{47000000.0, 47200000.0, "6MM"},
	{75500000.0, 81000000.0, "4MM"},
	{119980000.0, 120020000.0, "2.5MM"},
	{142000000.0, 149000000.0, "2MM"},
	{241000000.0, 250000000.0, "1MM"},
}

// Classify returns the band name for fKHz, or "" when the frequency is outside
// the table or falls in a gap between allocations.
func (t Table) Classify(fKHz float64) string {
	if len(t) == 0 {
		return ""
	}
	if fKHz < t[0].LowKHz || fKHz > t[len(t)-1].HighKHz {
		return ""
	}
	for _, r := range t {
		if r.Contains(fKHz) {
			return r.Name
		}
	}
	return ""
}

// Classify looks fKHz up in the Standard table.
func Classify(fKHz float64) string {
	return Standard.Classify(fKHz)
}
