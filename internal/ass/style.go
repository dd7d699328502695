package ass

// single style definition
type Style struct {
	Name      string
	Font      string
	FontSize  float64
	Primary   Color
	Secondary Color
	Outline   Color
	Shadow    Color
	Bold      bool
	Italic    bool
	Underline bool
	StrikeOut bool
	ScaleX    float64
	ScaleY    float64
	Spacing   float64
	Angle     float64

	BorderStyle int
	OutlineW    float64
	ShadowW     float64

	// ASS numpad layout, 1-9
	Alignment int
	Margin    [3]int
	Encoding  int
}

// style used when a script carries none of its own
func DefaultStyle() Style {
	return Style{
		Name:        "Default",
		Font:        "Arial",
		FontSize:    20,
		Primary:     Color{R: 255, G: 255, B: 255},
		Secondary:   Color{R: 255},
		Outline:     Color{},
		Shadow:      Color{},
		ScaleX:      100,
		ScaleY:      100,
		BorderStyle: 1,
		OutlineW:    2,
		ShadowW:     2,
		Alignment:   2,
		Margin:      [3]int{10, 10, 10},
		Encoding:    1,
	}
}
