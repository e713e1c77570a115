// Command delaunaydemo triangulates a set of points read from stdin or an
// SVG polygon and renders the result to a PNG, optionally previewing it
// inline in an iTerm2-compatible terminal. Point-scanning format and the
// "read stdin, render with gg, preview with imgcat" shape are grounded on
// the teacher's main.go and internal/querygraph_draw.go; SVG point
// extraction is grounded on triangulate/fixture_test.go's use of
// svgparser.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi-labs/delaunay"
	"github.com/osuushi-labs/delaunay/dbg"
	"github.com/osuushi-labs/delaunay/geom"
)

const drawPadding = 40

var (
	app = kingpin.New("delaunaydemo", "Triangulate a point set and render the result.")

	engine = app.Flag("engine", "Insertion engine to use.").Default("berg").Enum("berg", "bowyer")
	seed   = app.Flag("seed", "Seed controlling insertion order.").Default("928881").Int64()
	svg    = app.Flag("svg", "Read points from an SVG polygon instead of stdin.").String()
	out    = app.Flag("out", "Path to write the rendered PNG.").Default("/tmp/delaunaydemo.png").String()
	scale  = app.Flag("scale", "Pixels per input unit.").Default("20").Float64()
	preview = app.Flag("preview", "Stream the PNG to the terminal via imgcat.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	points, err := readPoints()
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
	if len(points) < 3 {
		fmt.Fprintln(os.Stderr, aurora.Red("need at least 3 points to triangulate"))
		os.Exit(1)
	}

	var tr *delaunay.Triangulation
	switch *engine {
	case "bowyer":
		tr, _, err = delaunay.TriangulateBowyer(points, *seed)
	default:
		tr, _, err = delaunay.TriangulateBerg(points, *seed)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("triangulation failed: %v", err)))
		os.Exit(1)
	}

	solid := 0
	for _, t := range tr.Triangles() {
		if !t.IsGhost() {
			solid++
		}
	}
	fmt.Printf("%s engine %s: %s points, %s solid triangles\n",
		aurora.Cyan("delaunaydemo"), aurora.Green(*engine),
		aurora.Yellow(len(points)), aurora.Yellow(solid))

	if err := render(tr, points, *out, *scale); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("render failed: %v", err)))
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", aurora.Cyan(*out))

	if *preview {
		imgcat.CatFile(*out, os.Stdout)
	}
}

func readPoints() ([]delaunay.Point, error) {
	if *svg != "" {
		return readSVGPoints(*svg)
	}
	return readStdinPoints(os.Stdin)
}

// readStdinPoints scans newline-separated "x y" pairs, one point per line,
// matching the teacher's readPolygons scanning convention minus the
// blank-line polygon separator (this demo triangulates one point set, not
// a polygon list).
func readStdinPoints(in *os.File) ([]delaunay.Point, error) {
	var points []delaunay.Point
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := parsePoint(line)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, scanner.Err()
}

func parsePoint(line string) (delaunay.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return delaunay.Point{}, fmt.Errorf("invalid point line %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return delaunay.Point{}, fmt.Errorf("invalid x value %q: %w", parts[0], err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return delaunay.Point{}, fmt.Errorf("invalid y value %q: %w", parts[1], err)
	}
	return delaunay.Point{X: x, Y: y}, nil
}

// readSVGPoints extracts the vertices of the first <polygon> element found
// in the given SVG file, in file order.
func readSVGPoints(path string) ([]delaunay.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rootEl, err := svgparser.Parse(f, true)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, fmt.Errorf("no <polygon> found in %q", path)
	}

	pointString := polygons[0].Attributes["points"]
	var points []delaunay.Point
	for _, pair := range strings.Fields(pointString) {
		coords := strings.Split(pair, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid point %q in %q", pair, path)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x value %q: %w", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y value %q: %w", coords[1], err)
		}
		points = append(points, delaunay.Point{X: x, Y: y})
	}
	return points, nil
}

// render draws every solid triangle of tr whose three vertices are input
// points (triangles on a bounding-triangle sentinel are skipped) with
// fogleman/gg, labelling each
// with a petname-derived short name via dbg.TriangleName. Layout (flip Y,
// pad, scale, translate to the point set's bounding box) is grounded on
// the teacher's internal/querygraph_draw.go.
func render(tr *delaunay.Triangulation, points []delaunay.Point, path string, scale float64) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2 / scale)
	for _, t := range tr.Triangles() {
		if t.IsGhost() {
			continue
		}
		idx := t.Indices()
		if idx[0].IsBounding() || idx[1].IsBounding() || idx[2].IsBounding() {
			continue
		}
		a := coordOf(points, idx[0])
		b := coordOf(points, idx[1])
		cc := coordOf(points, idx[2])

		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(cc.X, cc.Y)
		c.ClosePath()
		c.SetRGBA(0.2, 0.4, 0.9, 0.15)
		c.FillPreserve()
		c.SetRGB(0.1, 0.1, 0.1)
		c.Stroke()

		centerX, centerY := (a.X+b.X+cc.X)/3, (a.Y+b.Y+cc.Y)/3
		drawLabel(c, dbg.TriangleName(t), centerX, centerY, scale)
	}

	return c.SavePNG(path)
}

func drawLabel(c *gg.Context, text string, x, y, scale float64) {
	px, py := c.TransformPoint(x, y)
	c.Push()
	c.Identity()
	c.SetRGB(0, 0, 0)
	c.DrawStringAnchored(text, px, py, 0.5, 0.5)
	c.Pop()
}

func coordOf(points []delaunay.Point, idx delaunay.PointIndex) delaunay.Point {
	if idx.Kind() != geom.KindInput {
		// Bounding/ghost vertices have no input coordinate; render skips
		// every triangle with such a vertex, so it never reaches here.
		return delaunay.Point{}
	}
	return points[int(idx-delaunay.FirstPointIndex)]
}
