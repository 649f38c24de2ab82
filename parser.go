package weburl

//go:generate go tool errtrace -w .

import (
	"log/slog"
	"slices"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/weburl/internal/constraints"
	"github.com/ghettovoice/weburl/internal/errorutil"
	"github.com/ghettovoice/weburl/internal/grammar"
	"github.com/ghettovoice/weburl/internal/log"
	"github.com/ghettovoice/weburl/percent"
)

// Parser parses URL strings into [Components].
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	opts ParseOptions
}

// NewParser creates a parser configured with the given options.
func NewParser(opts ...ParseOption) *Parser {
	return &Parser{opts: buildParseOptions(opts)}
}

// Parse parses an absolute URL.
func Parse[T constraints.Byteseq](s T, opts ...ParseOption) (Components, error) {
	return errtrace.Wrap2(NewParser(opts...).Parse(string(s), nil))
}

// ParseWithBase parses s, resolving it against base when s is relative.
// A zero base behaves as no base at all.
func ParseWithBase[T constraints.Byteseq](s T, base Components, opts ...ParseOption) (Components, error) {
	return errtrace.Wrap2(NewParser(opts...).Parse(string(s), &base))
}

// Parse parses input against an optional base URL.
//
// Leading and trailing C0 controls and spaces are trimmed, tabs and newlines are removed
// anywhere in the input; both are reported as validation errors. Parsing stops on the
// first fatal error, which matches one of the package sentinel errors.
func (p *Parser) Parse(input string, base *Components) (Components, error) {
	if base != nil && base.IsZero() {
		base = nil
	}

	m := &machine{
		opts: &p.opts,
		base: base,
	}
	if p.opts.TraceStates {
		m.tracer = newStateTracer(p.opts.Logger)
	}
	m.input = m.preprocess(input)

	if err := m.run(); err != nil {
		p.opts.Logger.Debug("failed to parse URL",
			slog.Any("input", log.StringValue(input)),
			slog.Any("error", err),
		)
		return Components{}, errtrace.Wrap(err)
	}
	return m.components(), nil
}

const eof rune = -1

type machine struct {
	opts   *ParseOptions
	base   *Components
	tracer *stateTracer

	input   []rune
	pointer int
	state   parserState
	buf     []rune

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool

	scheme   Scheme
	username []byte
	password []byte
	host     Host
	port     uint16
	hasPort  bool
	path     []string
	opaque   []byte
	isOpaque bool
	query    []byte
	hasQuery bool
	fragment []byte
	hasFrag  bool

	err error
}

func (m *machine) preprocess(input string) []rune {
	raw := []rune(input)

	start, end := 0, len(raw)
	for start < end && grammar.IsC0ControlOrSpace(raw[start]) {
		start++
	}
	for end > start && grammar.IsC0ControlOrSpace(raw[end-1]) {
		end--
	}
	if start > 0 || end < len(raw) {
		m.reportAt(LeadingOrTrailingSpace, start)
	}
	raw = raw[start:end]

	var out []rune
	for i, c := range raw {
		if grammar.IsTabOrNewline(c) {
			if out == nil {
				out = make([]rune, 0, len(raw))
				out = append(out, raw[:i]...)
			}
			m.reportAt(TabOrNewline, i)
			continue
		}
		if out != nil {
			out = append(out, c)
		}
	}
	if out == nil {
		return raw
	}
	return out
}

func (m *machine) run() error {
	for {
		c := eof
		if m.pointer < len(m.input) {
			c = m.input[m.pointer]
		}

		consumed, err := m.step(c)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if m.err != nil {
			return errtrace.Wrap(m.err)
		}
		if !consumed {
			continue
		}
		if c == eof {
			break
		}
		m.pointer++
	}

	if m.tracer != nil && m.tracer.state() != m.state {
		return errtrace.Wrap(errorutil.NewWrapperError(
			ErrUnexpectedTransition,
			"parser ended in %s, tracer in %s",
			m.state, m.tracer.state(),
		))
	}
	return nil
}

// step handles c in the current state and tells whether c was consumed.
// Unconsumed code points are processed again in the new state.
func (m *machine) step(c rune) (bool, error) {
	switch m.state {
	case stateSchemeStart:
		return m.schemeStart(c), nil
	case stateScheme:
		return errtrace.Wrap2(m.schemeName(c))
	case stateNoScheme:
		return errtrace.Wrap2(m.noScheme(c))
	case stateSpecialRelativeOrAuthority:
		return m.specialRelativeOrAuthority(c), nil
	case statePathOrAuthority:
		return m.pathOrAuthority(c), nil
	case stateRelative:
		return m.relative(c), nil
	case stateRelativeSlash:
		return m.relativeSlash(c), nil
	case stateSpecialAuthoritySlashes:
		return m.specialAuthoritySlashes(c), nil
	case stateSpecialAuthorityIgnoreSlashes:
		return m.specialAuthorityIgnoreSlashes(c), nil
	case stateAuthority:
		return errtrace.Wrap2(m.authority(c))
	case stateHost:
		return errtrace.Wrap2(m.hostName(c))
	case statePort:
		return errtrace.Wrap2(m.portNumber(c))
	case stateFile:
		return m.file(c), nil
	case stateFileSlash:
		return m.fileSlash(c), nil
	case stateFileHost:
		return errtrace.Wrap2(m.fileHost(c))
	case statePathStart:
		return m.pathStart(c), nil
	case statePath:
		return m.pathSegment(c), nil
	case stateOpaquePath:
		return m.opaquePath(c), nil
	case stateQuery:
		return m.queryPart(c), nil
	case stateFragment:
		return m.fragmentPart(c), nil
	default:
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedTransition, "unknown state %s", m.state))
	}
}

func (m *machine) goTo(to parserState) {
	if m.tracer != nil && m.err == nil {
		m.err = m.tracer.transition(m.state, to, m.pointer)
	}
	m.state = to
}

func (m *machine) reportAt(ve ValidationError, offset int) {
	m.opts.Logger.Debug("URL validation error",
		slog.Any("error", ve),
		slog.Int("offset", offset),
	)
	if m.opts.Reporter != nil {
		m.opts.Reporter.Report(ve, offset)
	}
}

func (m *machine) report(ve ValidationError) { m.reportAt(ve, m.pointer) }

func (m *machine) remaining() []rune {
	if m.pointer+1 >= len(m.input) {
		return nil
	}
	return m.input[m.pointer+1:]
}

func (m *machine) remainingStartsWith(c rune) bool {
	rem := m.remaining()
	return len(rem) > 0 && rem[0] == c
}

func (m *machine) special() bool { return m.scheme.IsSpecial() }

// isSeparator reports whether c ends an authority, host, port or path segment.
func (m *machine) isSeparator(c rune) bool {
	switch c {
	case eof, '/', '?', '#':
		return true
	case '\\':
		return m.special()
	}
	return false
}

func (m *machine) checkPercent(c rune) {
	if c != '%' {
		return
	}
	end := min(m.pointer+3, len(m.input))
	if !percent.IsValidEscape(string(m.input[m.pointer:end]), 0) {
		m.report(InvalidPercentEncoding)
	}
}

func appendEncoded(dst []byte, c rune, set percent.Set) []byte {
	var tmp [utf8.UTFMax]byte
	return percent.AppendEncode(dst, utf8.AppendRune(tmp[:0], c), set.Contains)
}

func (m *machine) schemeStart(c rune) bool {
	if c != eof && grammar.IsASCIIAlpha(c) {
		m.buf = append(m.buf, grammar.ToLowerASCII(c))
		m.goTo(stateScheme)
		return true
	}
	m.goTo(stateNoScheme)
	return false
}

func (m *machine) schemeName(c rune) (bool, error) {
	if c != eof && grammar.IsSchemeChar(c) {
		m.buf = append(m.buf, grammar.ToLowerASCII(c))
		return true, nil
	}
	if c != ':' {
		// not a scheme after all, start over without one
		m.buf = m.buf[:0]
		m.pointer = 0
		m.goTo(stateNoScheme)
		return false, nil
	}

	scheme, err := ParseScheme(string(m.buf))
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	m.scheme = scheme
	m.buf = m.buf[:0]

	switch {
	case scheme == SchemeFile:
		rem := m.remaining()
		if len(rem) < 2 || rem[0] != '/' || rem[1] != '/' {
			m.report(SpecialSchemeMissingSolidus)
		}
		m.goTo(stateFile)
	case scheme.IsSpecial() && m.base != nil && m.base.scheme == scheme:
		m.goTo(stateSpecialRelativeOrAuthority)
	case scheme.IsSpecial():
		m.goTo(stateSpecialAuthoritySlashes)
	case m.remainingStartsWith('/'):
		m.goTo(statePathOrAuthority)
		m.pointer++
	default:
		m.isOpaque = true
		m.goTo(stateOpaquePath)
	}
	return true, nil
}

func (m *machine) noScheme(c rune) (bool, error) {
	switch {
	case m.base == nil || (m.base.CannotBeABaseURL() && c != '#'):
		return false, errtrace.Wrap(m.schemeError())
	case m.base.CannotBeABaseURL():
		m.scheme = m.base.scheme
		m.isOpaque = true
		m.opaque = append(m.opaque[:0], m.base.path.opaque...)
		m.query = append(m.query[:0], m.base.query...)
		m.hasQuery = m.base.hasQuery
		m.hasFrag = true
		m.goTo(stateFragment)
		return true, nil
	case m.base.scheme != SchemeFile:
		m.goTo(stateRelative)
		return false, nil
	default:
		m.goTo(stateFile)
		return false, nil
	}
}

// schemeError tells a malformed scheme, as in "1http://host", from no scheme at all.
func (m *machine) schemeError() error {
	for i, c := range m.input {
		switch c {
		case ':':
			if !grammar.IsScheme(string(m.input[:i])) {
				return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "%q", string(m.input[:i])))
			}
			return errtrace.Wrap(ErrMissingScheme)
		case '/', '?', '#':
			return errtrace.Wrap(ErrMissingScheme)
		}
	}
	return errtrace.Wrap(ErrMissingScheme)
}

func (m *machine) specialRelativeOrAuthority(c rune) bool {
	if c == '/' && m.remainingStartsWith('/') {
		m.goTo(stateSpecialAuthorityIgnoreSlashes)
		m.pointer++
		return true
	}
	m.report(SpecialSchemeMissingSolidus)
	m.goTo(stateRelative)
	return false
}

func (m *machine) pathOrAuthority(c rune) bool {
	if c == '/' {
		m.goTo(stateAuthority)
		return true
	}
	m.goTo(statePath)
	return false
}

func (m *machine) copyBaseAuthority() {
	m.username = append(m.username[:0], m.base.username...)
	m.password = append(m.password[:0], m.base.password...)
	m.host = m.base.host
	m.port, m.hasPort = m.base.port, m.base.hasPort
}

func (m *machine) relative(c rune) bool {
	m.scheme = m.base.scheme
	if c == '/' {
		m.goTo(stateRelativeSlash)
		return true
	}
	if m.special() && c == '\\' {
		m.report(InvalidReverseSolidus)
		m.goTo(stateRelativeSlash)
		return true
	}

	m.copyBaseAuthority()
	m.path = slices.Clone(m.base.path.segments)
	m.query = append(m.query[:0], m.base.query...)
	m.hasQuery = m.base.hasQuery
	switch c {
	case '?':
		m.query, m.hasQuery = m.query[:0], true
		m.goTo(stateQuery)
	case '#':
		m.hasFrag = true
		m.goTo(stateFragment)
	case eof:
	default:
		m.query, m.hasQuery = m.query[:0], false
		m.shortenPath()
		m.goTo(statePath)
		return false
	}
	return true
}

func (m *machine) relativeSlash(c rune) bool {
	if m.special() && (c == '/' || c == '\\') {
		if c == '\\' {
			m.report(InvalidReverseSolidus)
		}
		m.goTo(stateSpecialAuthorityIgnoreSlashes)
		return true
	}
	if c == '/' {
		m.goTo(stateAuthority)
		return true
	}
	m.copyBaseAuthority()
	m.goTo(statePath)
	return false
}

func (m *machine) specialAuthoritySlashes(c rune) bool {
	if c == '/' && m.remainingStartsWith('/') {
		m.goTo(stateSpecialAuthorityIgnoreSlashes)
		m.pointer++
		return true
	}
	m.report(SpecialSchemeMissingSolidus)
	m.goTo(stateSpecialAuthorityIgnoreSlashes)
	return false
}

func (m *machine) specialAuthorityIgnoreSlashes(c rune) bool {
	if c != '/' && c != '\\' {
		m.goTo(stateAuthority)
		return false
	}
	m.report(SpecialSchemeMissingSolidus)
	return true
}

func (m *machine) authority(c rune) (bool, error) {
	if c == '@' {
		m.report(InvalidCredentials)
		if m.atSignSeen {
			m.buf = append([]rune("%40"), m.buf...)
		}
		m.atSignSeen = true
		for _, cp := range m.buf {
			if cp == ':' && !m.passwordTokenSeen {
				m.passwordTokenSeen = true
				continue
			}
			if m.passwordTokenSeen {
				m.password = appendEncoded(m.password, cp, percent.UserinfoSet)
			} else {
				m.username = appendEncoded(m.username, cp, percent.UserinfoSet)
			}
		}
		m.buf = m.buf[:0]
		return true, nil
	}

	if m.isSeparator(c) {
		if m.atSignSeen && len(m.buf) == 0 {
			return false, errtrace.Wrap(errorutil.NewWrapperError(ErrHostMissing, "credentials without host at %d", m.pointer))
		}
		// rewind to the start of the host
		m.pointer -= len(m.buf)
		m.buf = m.buf[:0]
		m.goTo(stateHost)
		return false, nil
	}

	m.buf = append(m.buf, c)
	return true, nil
}

func (m *machine) parseHostBuffer() (Host, error) {
	h, err := parseHost(string(m.buf), m.special(), m.opts.CheckDNSLength)
	if err != nil {
		return Host{}, errtrace.Wrap(newHostError(err))
	}
	return h, nil
}

func (m *machine) hostName(c rune) (bool, error) {
	if c == ':' && !m.insideBrackets {
		if len(m.buf) == 0 {
			return false, errtrace.Wrap(errorutil.NewWrapperError(ErrHostMissing, "port without host at %d", m.pointer))
		}
		h, err := m.parseHostBuffer()
		if err != nil {
			return false, errtrace.Wrap(err)
		}
		m.host = h
		m.buf = m.buf[:0]
		m.goTo(statePort)
		return true, nil
	}

	if m.isSeparator(c) {
		if m.special() && len(m.buf) == 0 {
			return false, errtrace.Wrap(errorutil.NewWrapperError(ErrHostMissing, "empty host of %s URL", m.scheme))
		}
		h, err := m.parseHostBuffer()
		if err != nil {
			return false, errtrace.Wrap(err)
		}
		m.host = h
		m.buf = m.buf[:0]
		m.goTo(statePathStart)
		return false, nil
	}

	switch c {
	case '[':
		m.insideBrackets = true
	case ']':
		m.insideBrackets = false
	}
	m.buf = append(m.buf, c)
	return true, nil
}

const maxPort = 1<<16 - 1

func (m *machine) portNumber(c rune) (bool, error) {
	if c != eof && grammar.IsASCIIDigit(c) {
		m.buf = append(m.buf, c)
		return true, nil
	}
	if !m.isSeparator(c) {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "unexpected %q at %d", c, m.pointer))
	}

	if len(m.buf) > 0 {
		var port int
		for _, d := range m.buf {
			port = port*10 + int(d-'0')
			if port > maxPort {
				return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "%q is out of range", string(m.buf)))
			}
		}
		if def, ok := m.scheme.DefaultPort(); ok && int(def) == port {
			m.port, m.hasPort = 0, false
		} else {
			m.port, m.hasPort = uint16(port), true
		}
		m.buf = m.buf[:0]
	}
	m.goTo(statePathStart)
	return false, nil
}

func (m *machine) file(c rune) bool {
	m.scheme = SchemeFile
	m.host = EmptyHost()

	if c == '/' || c == '\\' {
		if c == '\\' {
			m.report(InvalidReverseSolidus)
		}
		m.goTo(stateFileSlash)
		return true
	}
	if m.base == nil || m.base.scheme != SchemeFile {
		m.goTo(statePath)
		return false
	}

	m.host = m.base.host
	m.path = slices.Clone(m.base.path.segments)
	m.query = append(m.query[:0], m.base.query...)
	m.hasQuery = m.base.hasQuery
	switch c {
	case '?':
		m.query, m.hasQuery = m.query[:0], true
		m.goTo(stateQuery)
	case '#':
		m.hasFrag = true
		m.goTo(stateFragment)
	case eof:
	default:
		m.query, m.hasQuery = m.query[:0], false
		if !grammar.StartsWithWindowsDriveLetter(m.input[m.pointer:]) {
			m.shortenPath()
		} else {
			m.report(FileInvalidWindowsDriveLetter)
			m.path = m.path[:0]
		}
		m.goTo(statePath)
		return false
	}
	return true
}

func (m *machine) fileSlash(c rune) bool {
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.report(InvalidReverseSolidus)
		}
		m.goTo(stateFileHost)
		return true
	}
	if m.base != nil && m.base.scheme == SchemeFile {
		m.host = m.base.host
		if !grammar.StartsWithWindowsDriveLetter(m.input[m.pointer:]) &&
			m.base.path.Len() > 0 &&
			grammar.IsNormalizedWindowsDriveLetter(m.base.path.segments[0]) {
			m.path = append(m.path, m.base.path.segments[0])
		}
	}
	m.goTo(statePath)
	return false
}

func (m *machine) fileHost(c rune) (bool, error) {
	switch c {
	case eof, '/', '\\', '?', '#':
	default:
		m.buf = append(m.buf, c)
		return true, nil
	}

	switch {
	case grammar.IsWindowsDriveLetter(string(m.buf)):
		// the buffer stays and becomes the first path segment
		m.report(FileInvalidWindowsDriveLetterHost)
		m.goTo(statePath)
	case len(m.buf) == 0:
		m.host = EmptyHost()
		m.goTo(statePathStart)
	default:
		h, err := m.parseHostBuffer()
		if err != nil {
			return false, errtrace.Wrap(err)
		}
		if d, ok := h.Domain(); ok && d == "localhost" {
			h = EmptyHost()
		}
		m.host = h
		m.buf = m.buf[:0]
		m.goTo(statePathStart)
	}
	return false, nil
}

func (m *machine) pathStart(c rune) bool {
	switch {
	case m.special():
		if c == '\\' {
			m.report(InvalidReverseSolidus)
		}
		m.goTo(statePath)
		return c == '/' || c == '\\'
	case c == '?':
		m.query, m.hasQuery = m.query[:0], true
		m.goTo(stateQuery)
		return true
	case c == '#':
		m.hasFrag = true
		m.goTo(stateFragment)
		return true
	case c != eof:
		m.goTo(statePath)
		return c == '/'
	default:
		return true
	}
}

func (m *machine) pathSegment(c rune) bool {
	slash := c == '/' || (m.special() && c == '\\')
	if !slash && c != eof && c != '?' && c != '#' {
		m.checkPercent(c)
		set := percent.PathSet
		if m.special() {
			set = percent.SpecialPathSet
		}
		var tmp [3 * utf8.UTFMax]byte
		for _, b := range appendEncoded(tmp[:0], c, set) {
			m.buf = append(m.buf, rune(b))
		}
		return true
	}

	if c == '\\' {
		m.report(InvalidReverseSolidus)
	}

	seg := string(m.buf)
	switch {
	case grammar.IsDoubleDotSegment(seg):
		m.shortenPath()
		if !slash {
			m.path = append(m.path, "")
		}
	case grammar.IsSingleDotSegment(seg):
		if !slash {
			m.path = append(m.path, "")
		}
	default:
		if m.scheme == SchemeFile && len(m.path) == 0 && grammar.IsWindowsDriveLetter(seg) {
			seg = seg[:1] + ":"
		}
		m.path = append(m.path, seg)
	}
	m.buf = m.buf[:0]

	switch c {
	case '?':
		m.query, m.hasQuery = m.query[:0], true
		m.goTo(stateQuery)
	case '#':
		m.hasFrag = true
		m.goTo(stateFragment)
	}
	return true
}

// shortenPath drops the last segment, except a lone drive letter of a file URL.
func (m *machine) shortenPath() {
	if m.scheme == SchemeFile && len(m.path) == 1 && grammar.IsNormalizedWindowsDriveLetter(m.path[0]) {
		return
	}
	if len(m.path) > 0 {
		m.path = m.path[:len(m.path)-1]
	}
}

func (m *machine) opaquePath(c rune) bool {
	switch c {
	case '?':
		m.query, m.hasQuery = m.query[:0], true
		m.goTo(stateQuery)
	case '#':
		m.hasFrag = true
		m.goTo(stateFragment)
	case eof:
	default:
		m.checkPercent(c)
		m.opaque = appendEncoded(m.opaque, c, percent.C0ControlSet)
	}
	return true
}

func (m *machine) queryPart(c rune) bool {
	switch c {
	case '#':
		m.hasFrag = true
		m.goTo(stateFragment)
	case eof:
	default:
		m.checkPercent(c)
		set := percent.QuerySet
		if m.special() {
			set = percent.SpecialQuerySet
		}
		m.query = appendEncoded(m.query, c, set)
	}
	return true
}

func (m *machine) fragmentPart(c rune) bool {
	if c != eof {
		m.checkPercent(c)
		m.fragment = appendEncoded(m.fragment, c, percent.FragmentSet)
	}
	return true
}

func (m *machine) components() Components {
	c := Components{
		scheme:   m.scheme,
		username: string(m.username),
		password: string(m.password),
		host:     m.host,
		port:     m.port,
		hasPort:  m.hasPort,
		query:    string(m.query),
		hasQuery: m.hasQuery,
		fragment: string(m.fragment),
		hasFrag:  m.hasFrag,
	}
	if m.isOpaque {
		c.path = OpaquePath(string(m.opaque))
	} else {
		c.path = Path{segments: m.path}
	}
	return c
}
