package xgbutil

import (
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/xprop"

	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// InternAtom resolves (creating if necessary) the X atom for name.
func (c *Conn) InternAtom(name string) (xid.Xid, error) {
	atom, err := xprop.Atm(c.X, name)
	if err != nil {
		return 0, wmerrors.Wrapf(wmerrors.Backend, err, "intern_atom name=%s", name)
	}
	return xid.Xid(atom), nil
}

// AtomName resolves an atom back to its string name.
func (c *Conn) AtomName(atom xid.Xid) (string, error) {
	reply, err := xproto.GetAtomName(c.X.Conn(), xproto.Atom(atom)).Reply()
	if err != nil {
		return "", wmerrors.Wrapf(wmerrors.Backend, err, "get_atom_name atom=%d", atom)
	}
	return reply.Name, nil
}

// GetProp reads a window property by name, typing the result according
// to the property's X type atom. ok is false, with a nil error, when
// the property doesn't exist.
func (c *Conn) GetProp(w xid.Xid, name string) (xconn.Prop, bool, error) {
	reply, err := xprop.GetProperty(c.X, xproto.Window(w), name)
	if err != nil {
		if xprop.IsNotExist(err) {
			return xconn.Prop{}, false, nil
		}
		return xconn.Prop{}, false, wmerrors.Wrapf(wmerrors.Backend, err, "get_property window=%d name=%s", w, name)
	}

	typeName, _ := c.AtomName(xid.Xid(reply.Type))
	switch typeName {
	case "ATOM":
		nums, err := xprop.PropValNums(reply, nil)
		if err != nil {
			return xconn.Prop{}, false, wmerrors.Wrap(wmerrors.Backend, "decode atom property", err)
		}
		atoms := make([]xid.Xid, len(nums))
		for i, v := range nums {
			atoms[i] = xid.Xid(v)
		}
		return xconn.Prop{Kind: xconn.PropAtom, Atoms: atoms}, true, nil
	case "WINDOW":
		nums, err := xprop.PropValNums(reply, nil)
		if err != nil {
			return xconn.Prop{}, false, wmerrors.Wrap(wmerrors.Backend, "decode window property", err)
		}
		wins := make([]xid.Xid, len(nums))
		for i, v := range nums {
			wins[i] = xid.Xid(v)
		}
		return xconn.Prop{Kind: xconn.PropWindow, Windows: wins}, true, nil
	case "STRING", "UTF8_STRING":
		strs, err := xprop.PropValStrs(reply, nil)
		if err != nil {
			return xconn.Prop{}, false, wmerrors.Wrap(wmerrors.Backend, "decode string property", err)
		}
		return xconn.Prop{Kind: xconn.PropString, Strings: strs}, true, nil
	default:
		nums, err := xprop.PropValNums(reply, nil)
		if err != nil {
			return xconn.Prop{}, false, wmerrors.Wrap(wmerrors.Backend, "decode cardinal property", err)
		}
		cards := make([]uint32, len(nums))
		for i, v := range nums {
			cards[i] = uint32(v)
		}
		return xconn.Prop{Kind: xconn.PropCardinal, Cardinals: cards}, true, nil
	}
}

// SetProp writes a typed property value to a window.
func (c *Conn) SetProp(w xid.Xid, name string, p xconn.Prop) error {
	win := xproto.Window(w)
	switch p.Kind {
	case xconn.PropCardinal:
		return c.changeCardinalProp(win, name, "CARDINAL", p.Cardinals)
	case xconn.PropAtom:
		cards := make([]uint32, len(p.Atoms))
		for i, a := range p.Atoms {
			cards[i] = uint32(a)
		}
		return c.changeCardinalProp(win, name, "ATOM", cards)
	case xconn.PropWindow:
		cards := make([]uint32, len(p.Windows))
		for i, a := range p.Windows {
			cards[i] = uint32(a)
		}
		return c.changeCardinalProp(win, name, "WINDOW", cards)
	case xconn.PropString:
		data := []byte{}
		for _, s := range p.Strings {
			data = append(data, []byte(s)...)
			data = append(data, 0)
		}
		if err := xprop.ChangeProp(c.X, win, 8, name, "UTF8_STRING", data); err != nil {
			return wmerrors.Wrapf(wmerrors.Backend, err, "change_prop window=%d name=%s", w, name)
		}
		return nil
	}
	return wmerrors.Newf(wmerrors.Backend, "set_prop: unknown property kind %d", p.Kind)
}

func (c *Conn) changeCardinalProp(win xproto.Window, name, typeName string, values []uint32) error {
	data := make([]byte, 0, 4*len(values))
	for _, v := range values {
		data = append(data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	if err := xprop.ChangeProp(c.X, win, 32, name, typeName, data); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "change_prop window=%d name=%s", win, name)
	}
	return nil
}

// DeleteProp removes a property from a window.
func (c *Conn) DeleteProp(w xid.Xid, name string) error {
	atom, err := c.InternAtom(name)
	if err != nil {
		return err
	}
	err = xproto.DeletePropertyChecked(c.X.Conn(), xproto.Window(w), xproto.Atom(atom)).Check()
	if err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "delete_property window=%d name=%s", w, name)
	}
	return nil
}

// ListProps returns the names of every property currently set on a
// window.
func (c *Conn) ListProps(w xid.Xid) ([]string, error) {
	reply, err := xproto.ListProperties(c.X.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return nil, wmerrors.Wrapf(wmerrors.Backend, err, "list_properties window=%d", w)
	}
	names := make([]string, len(reply.Atoms))
	for i, a := range reply.Atoms {
		name, err := c.AtomName(xid.Xid(a))
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}
