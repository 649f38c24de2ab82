package weburl

import (
	"log/slog"
	"strconv"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/weburl/internal/errorutil"
)

type parserState uint8

const (
	stateSchemeStart parserState = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

var stateNames = [...]string{
	stateSchemeStart:                   "scheme start",
	stateScheme:                        "scheme",
	stateNoScheme:                      "no scheme",
	stateSpecialRelativeOrAuthority:    "special relative or authority",
	statePathOrAuthority:               "path or authority",
	stateRelative:                      "relative",
	stateRelativeSlash:                 "relative slash",
	stateSpecialAuthoritySlashes:       "special authority slashes",
	stateSpecialAuthorityIgnoreSlashes: "special authority ignore slashes",
	stateAuthority:                     "authority",
	stateHost:                          "host",
	statePort:                          "port",
	stateFile:                          "file",
	stateFileSlash:                     "file slash",
	stateFileHost:                      "file host",
	statePathStart:                     "path start",
	statePath:                          "path",
	stateOpaquePath:                    "opaque path",
	stateQuery:                         "query",
	stateFragment:                      "fragment",
}

func (s parserState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "parserState(" + strconv.Itoa(int(s)) + ")"
}

// stateTransitions lists every state change the parser may take without a state override.
// Staying in the same state is not a transition.
var stateTransitions = map[parserState][]parserState{
	stateSchemeStart: {stateScheme, stateNoScheme},
	stateScheme: {
		stateFile,
		stateSpecialRelativeOrAuthority,
		stateSpecialAuthoritySlashes,
		statePathOrAuthority,
		stateOpaquePath,
		stateNoScheme,
	},
	stateNoScheme:                      {stateFragment, stateRelative, stateFile},
	stateSpecialRelativeOrAuthority:    {stateSpecialAuthorityIgnoreSlashes, stateRelative},
	statePathOrAuthority:               {stateAuthority, statePath},
	stateRelative:                      {stateRelativeSlash, stateQuery, stateFragment, statePath},
	stateRelativeSlash:                 {stateSpecialAuthorityIgnoreSlashes, stateAuthority, statePath},
	stateSpecialAuthoritySlashes:       {stateSpecialAuthorityIgnoreSlashes},
	stateSpecialAuthorityIgnoreSlashes: {stateAuthority},
	stateAuthority:                     {stateHost},
	stateHost:                          {statePort, statePathStart},
	statePort:                          {statePathStart},
	stateFile:                          {stateFileSlash, stateQuery, stateFragment, statePath},
	stateFileSlash:                     {stateFileHost, statePath},
	stateFileHost:                      {statePath, statePathStart},
	statePathStart:                     {statePath, stateQuery, stateFragment},
	statePath:                          {stateQuery, stateFragment},
	stateOpaquePath:                    {stateQuery, stateFragment},
	stateQuery:                         {stateFragment},
}

// newStateMachine builds a state machine whose triggers are the destination states.
func newStateMachine(initial parserState) *stateless.StateMachine {
	sm := stateless.NewStateMachine(initial)
	for from := stateSchemeStart; from <= stateFragment; from++ {
		cfg := sm.Configure(from)
		for _, to := range stateTransitions[from] {
			cfg.Permit(to, to)
		}
	}
	return sm
}

// StateGraph returns the parser state transition graph in the Graphviz DOT format.
func StateGraph() string {
	return newStateMachine(stateSchemeStart).ToGraph()
}

// stateTracer checks the transitions taken by the parser against the graph.
type stateTracer struct {
	sm     *stateless.StateMachine
	logger *slog.Logger
}

func newStateTracer(logger *slog.Logger) *stateTracer {
	return &stateTracer{
		sm:     newStateMachine(stateSchemeStart),
		logger: logger,
	}
}

func (t *stateTracer) transition(from, to parserState, pointer int) error {
	if from == to {
		return nil
	}
	if ok, _ := t.sm.CanFire(to); !ok {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedTransition, "%s -> %s at %d", from, to, pointer))
	}
	if err := t.sm.Fire(to); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedTransition, err))
	}
	t.logger.Debug("parser state transition",
		slog.Any("from", from),
		slog.Any("to", to),
		slog.Int("pointer", pointer),
	)
	return nil
}

func (t *stateTracer) state() parserState {
	return t.sm.MustState().(parserState) //nolint:forcetypeassert
}
