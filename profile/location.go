package profile

import (
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
)

// Location is the position and size of a component on a design canvas.
// Direction is the side the component's ports face, such as "RIGHT".
type Location struct {
	X, Y          int
	Height, Width int
	Direction     string
}

// IsZero returns true if l holds no location data.
func (l Location) IsZero() bool { return l == Location{} }

func (l *Location) ParseXML(n *xmlquery.Node) (err error) {
	var fresh Location
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"x", &fresh.X},
		{"y", &fresh.Y},
		{"height", &fresh.Height},
		{"width", &fresh.Width},
	} {
		v, ok := extAttr(n, f.name)
		if *f.dst, err = intAttr(v, ok, "location.ext."+f.name, 0); err != nil {
			return err
		}
	}
	fresh.Direction, _ = extAttr(n, "direction")
	*l = fresh
	return nil
}

func (l *Location) ParseYAML(m Mapping) (err error) {
	var fresh Location
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"x", &fresh.X},
		{"y", &fresh.Y},
		{"height", &fresh.Height},
		{"width", &fresh.Width},
	} {
		if *f.dst, err = yamlInt(m, f.name, "location.ext."+f.name, 0); err != nil {
			return err
		}
	}
	if fresh.Direction, err = yamlString(m, "direction", "location.ext.direction", false); err != nil {
		return err
	}
	*l = fresh
	return nil
}

func (l Location) SaveXML(e *xmlquery.Node) {
	setExt(e, "x", strconv.Itoa(l.X))
	setExt(e, "y", strconv.Itoa(l.Y))
	setExt(e, "height", strconv.Itoa(l.Height))
	setExt(e, "width", strconv.Itoa(l.Width))
	setExt(e, "direction", l.Direction)
}

func (l Location) ToDict() Mapping {
	return Mapping{
		"x":         l.X,
		"y":         l.Y,
		"height":    l.Height,
		"width":     l.Width,
		"direction": l.Direction,
	}
}

func (l Location) String() string {
	return fmt.Sprintf("%d,%d %dx%d %s", l.X, l.Y, l.Width, l.Height, l.Direction)
}
