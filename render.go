package weburl

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/weburl/internal/ioutil"
	"github.com/ghettovoice/weburl/internal/util"
)

// RenderOptions tune URL serialization.
type RenderOptions struct {
	// ExcludeFragment omits the fragment and its '#' delimiter.
	ExcludeFragment bool `json:"exclude_fragment,omitempty"`
}

// RenderTo writes the serialized URL to w.
// Parsing the output again yields equal components.
func (c Components) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if c.IsZero() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(string(c.scheme), ":")
	if !c.host.IsZero() {
		cw.WriteString("//")
		if c.username != "" || c.password != "" {
			cw.WriteString(c.username)
			if c.password != "" {
				cw.WriteString(":", c.password)
			}
			cw.WriteString("@")
		}
		cw.WriteString(c.host.String())
		if c.hasPort {
			cw.WriteString(":", strconv.FormatUint(uint64(c.port), 10))
		}
	} else if !c.path.IsOpaque() && c.path.Len() > 1 && c.path.segments[0] == "" {
		// keeps "//" at the path start from being read back as an authority
		cw.WriteString("/.")
	}
	cw.WriteString(c.path.String())
	if c.hasQuery {
		cw.WriteString("?", c.query)
	}
	if c.hasFrag && (opts == nil || !opts.ExcludeFragment) {
		cw.WriteString("#", c.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the serialized URL.
func (c Components) Render(opts *RenderOptions) string {
	if c.IsZero() {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the serialized URL, the href.
func (c Components) String() string { return c.Render(nil) }

// Format implements [fmt.Formatter].
// The %s and %v verbs print the href, %+s omits the fragment, %q prints the quoted href.
func (c Components) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			c.RenderTo(f, &RenderOptions{ExcludeFragment: true}) //nolint:errcheck
			return
		}
		fmt.Fprint(f, c.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(c.String()))
	case 'v':
		if f.Flag('#') {
			type hideMethods Components
			type Components hideMethods
			fmt.Fprintf(f, "%#v", Components(c))
			return
		}
		fmt.Fprint(f, c.String())
	default:
		type hideMethods Components
		type Components hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Components(c))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (c Components) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Components) UnmarshalText(text []byte) error {
	u, err := Parse(text)
	if err != nil {
		*c = Components{}
		return errtrace.Wrap(err)
	}
	*c = u
	return nil
}
