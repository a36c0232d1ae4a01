package compose

import (
	"github.com/mattrunyon/deephaven-plugins/pkg/figure"
)

// resizeBoxDomain shrinks a bounding box into newDomain. Each side present
// in both the box and newDomain is remapped from the unit canvas; a nil box
// is a silent no-op since not every object carries positional information.
func resizeBoxDomain(box *figure.DomainBox, newDomain figure.DomainBox) error {
	if box == nil {
		return nil
	}

	if newDomain.X != nil && box.X != nil {
		mapped, err := Remap(newDomain.X, box.X, unitSpan)
		if err != nil {
			return err
		}
		box.X = mapped
	}
	if newDomain.Y != nil && box.Y != nil {
		mapped, err := Remap(newDomain.Y, box.Y, unitSpan)
		if err != nil {
			return err
		}
		box.Y = mapped
	}
	return nil
}

// resizeAxis shrinks a 2-D axis object into newDomain. The axis domain
// follows the matching dimension; if the orthogonal dimension is supplied
// and the axis has an explicit position, that scalar follows it too: an
// x-axis's vertical placement must track the y-domain assigned to the whole
// figure, and vice versa. An axis without a domain is left untouched.
func resizeAxis(ax *figure.AxisObject, newDomain figure.DomainBox, fam figure.Family) error {
	if ax.Domain == nil {
		return nil
	}

	along, ortho := newDomain.X, newDomain.Y
	if fam == figure.FamilyYAxis {
		along, ortho = newDomain.Y, newDomain.X
	}

	if along != nil {
		mapped, err := Remap(along, ax.Domain, unitSpan)
		if err != nil {
			return err
		}
		ax.Domain = mapped
	}
	if ortho != nil && ax.Position != nil {
		pos, err := RemapScalar(ortho, *ax.Position, unitSpan)
		if err != nil {
			return err
		}
		ax.Position = &pos
	}
	return nil
}
