package profile

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const Placeholder = "–"

// Profile keeps the raw form values; numeric fields are parsed only when derived values need them.
type Profile struct {
	Name         string `json:"name"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	Height       string `json:"height"`
	Weight       string `json:"weight"`
	TargetWeight string `json:"targetWeight"`
	Focus        string `json:"focus"`
}

// View is the profile plus the values derived from it.
type View struct {
	Profile
	BMI      *float64 `json:"bmi"`
	BMIText  string   `json:"bmiText"`
	Initials string   `json:"initials"`
	Greeting string   `json:"greeting"`
}

func NewView(p Profile) View {
	view := View{
		Profile:  p,
		BMIText:  Placeholder,
		Initials: Initials(p.Name),
		Greeting: Greeting(p.Name),
	}
	if bmi, ok := BMI(p); ok {
		view.BMI = &bmi
		view.BMIText = strconv.FormatFloat(bmi, 'f', 1, 64)
	}
	return view
}

// ParsePositive parses a form value and treats anything non-positive as absent.
func ParsePositive(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// BMI is weight / (height in meters)^2, rounded to one decimal.
func BMI(p Profile) (float64, bool) {
	height, ok := ParsePositive(p.Height)
	if !ok {
		return 0, false
	}
	weight, ok := ParsePositive(p.Weight)
	if !ok {
		return 0, false
	}
	meters := height / 100
	return math.Round(weight/(meters*meters)*10) / 10, true
}

func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	if len(words) > 2 {
		words = words[:2]
	}
	var sb strings.Builder
	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

func Greeting(name string) string {
	if name == "" {
		name = "Athlete"
	}
	return "Welcome, " + name + "!"
}

// CurrentWeightLabel is the raw weight with a kg suffix, or the placeholder.
func CurrentWeightLabel(p Profile) string {
	if strings.TrimSpace(p.Weight) == "" {
		return Placeholder
	}
	return strings.TrimSpace(p.Weight) + " kg"
}
