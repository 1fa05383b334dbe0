package render

type rgb struct {
	R, G, B int
}

// textStyle captures the inline formatting used by the PDF layout.
type textStyle struct {
	Style      string // "", "B", or "I"
	Size       float64
	Color      rgb
	LineHeight float64
}

var (
	navy  = rgb{30, 58, 95}
	blue  = rgb{37, 99, 235}
	gray  = rgb{107, 114, 128}
	slate = rgb{55, 65, 81}
	ink   = rgb{26, 26, 26}
)

// pdfStyles centralizes the formatting for each resume element.
var pdfStyles = map[string]textStyle{
	"name":       {Style: "B", Size: 22, Color: navy, LineHeight: 26},
	"title":      {Size: 12, Color: blue, LineHeight: 15},
	"contact":    {Size: 9, Color: gray, LineHeight: 12},
	"section":    {Style: "B", Size: 11, Color: navy, LineHeight: 14},
	"body":       {Size: 10, Color: slate, LineHeight: 14},
	"skillLabel": {Style: "B", Size: 10, Color: slate, LineHeight: 14},
	"expTitle":   {Style: "B", Size: 10, Color: ink, LineHeight: 13},
	"expMeta":    {Style: "I", Size: 9, Color: blue, LineHeight: 12},
	"bullet":     {Size: 9, Color: slate, LineHeight: 12},
}
