// Package plot drives per-column figure generation and layering.
//
// The package sits between plot-type-specific drawing code and the
// composition core: a caller supplies a preprocessing callback, a drawing
// callback and a typed argument record, and [LayerOverColumns] turns a
// "plot over one or many columns" request into one figure per column,
// layers them onto shared axes, and normalizes legend and axis-title
// presentation.
//
// The data source itself is opaque here: the [Table] contract is checked
// for identity and threaded through the callbacks, never inspected.
package plot

import (
	"github.com/mattrunyon/deephaven-plugins/pkg/errors"
)

// Table is the opaque data-source handle threaded through preprocessing and
// drawing callbacks. The composition core never inspects it beyond type
// identity.
type Table interface {
	// ColumnNames lists the table's columns in order.
	ColumnNames() []string
}

// Columns is a tagged union over the two call shapes a column argument
// accepts: a single column name or an ordered list of names. Legend and
// axis-title presentation differ between the two even when the list has
// length one, so the original shape is preserved.
type Columns struct {
	names []string
	list  bool
}

// Column wraps a single column name.
func Column(name string) Columns {
	return Columns{names: []string{name}}
}

// ColumnList wraps an ordered list of column names.
func ColumnList(names ...string) Columns {
	return Columns{names: names, list: true}
}

// Names returns the column names. Scalar arguments yield a one-element
// list.
func (c Columns) Names() []string {
	return c.names
}

// IsList reports whether the argument was originally a list.
func (c Columns) IsList() bool {
	return c.list
}

// Empty reports whether no column was supplied.
func (c Columns) Empty() bool {
	return len(c.names) == 0
}

// Role selects which column argument a request plots over.
type Role string

// The two plottable roles.
const (
	RoleX Role = "x"
	RoleY Role = "y"
)

// Other returns the orthogonal role.
func (r Role) Other() Role {
	if r == RoleX {
		return RoleY
	}
	return RoleX
}

// Args is the argument record handed to drawing callbacks. The driver
// rewrites Table, X and Y per column; every other drawing option rides
// along in Extra untouched, except for the scene renames applied by
// [RemapSceneArgs].
type Args struct {
	Table       Table
	X           Columns
	Y           Columns
	Orientation string

	Extra map[string]any
}

// Columns returns the column argument for the given role.
func (a Args) Columns(role Role) Columns {
	if role == RoleX {
		return a.X
	}
	return a.Y
}

// setColumn assigns a single-column argument under the given role.
func (a *Args) setColumn(role Role, name string) {
	if role == RoleX {
		a.X = Column(name)
	} else {
		a.Y = Column(name)
	}
}

// ValidateCommonArgs checks the argument record shared by all plot types.
// The data source must be present; its contents are not inspected.
func ValidateCommonArgs(args Args) error {
	if args.Table == nil {
		return errors.New(errors.ErrCodeInvalidInput, "argument table is not a data source")
	}
	return nil
}

// sceneArgNames are the generic 2-D argument names that 3-D scene drawing
// code expects under scene-specific names instead.
var sceneArgNames = []string{"range_x", "range_y", "range_z", "log_x", "log_y", "log_z"}

// RemapSceneArgs renames the 3-D-relevant generic argument names by
// appending a "_scene" suffix, so downstream scene drawing code receives
// scene-specific names instead of the 2-D names the caller used. Absent
// names are skipped.
func RemapSceneArgs(args *Args) {
	if args.Extra == nil {
		return
	}
	for _, name := range sceneArgNames {
		if v, ok := args.Extra[name]; ok {
			args.Extra[name+"_scene"] = v
			delete(args.Extra, name)
		}
	}
}
