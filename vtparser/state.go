package vtparser

// State is one node of the VT500-series state chart (vt100.net/emu/dec_ansi_parser),
// extended per spec.md §4.2 with an explicit sub-parameter split in the CSI/DCS
// param states and independent APC/PM string capture (the teacher's chart
// folds APC/PM/SOS into a single sosPmApcString state with no put action;
// here APC and PM payloads each reach the Sink through their own
// Start/Put/End calls).
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosString
	StatePmString
	StateApcString
)

func isC0Prime(b byte) bool {
	return b <= 0x17 || b == 0x19 || (0x1c <= b && b <= 0x1f)
}

// anywhere handles the transitions valid from every state, taking
// precedence over the current state's own table. Grounded on
// parser/state.go's state.anywhere.
func anywhere(b byte) (Action, State, bool) {
	switch {
	case b == 0x18 || b == 0x1a || (0x80 <= b && b <= 0x8f) || (0x91 <= b && b <= 0x97) || b == 0x99 || b == 0x9a:
		return ActionExecute, StateGround, true
	case b == 0x9c:
		return ActionIgnore, StateGround, true
	case b == 0x1b:
		return ActionIgnore, StateEscape, true
	case b == 0x98:
		return ActionIgnore, StateSosString, true
	case b == 0x9e:
		return ActionIgnore, StatePmString, true
	case b == 0x9f:
		return ActionIgnore, StateApcString, true
	case b == 0x90:
		return ActionIgnore, StateDcsEntry, true
	case b == 0x9d:
		return ActionIgnore, StateOscString, true
	case b == 0x9b:
		return ActionIgnore, StateCsiEntry, true
	}
	return ActionNone, StateGround, false
}

// exitAction returns the action to fire when leaving cur (e.g. unhook when
// leaving DcsPassthrough, oscEnd when leaving OscString).
func exitAction(cur State) Action {
	switch cur {
	case StateDcsPassthrough:
		return ActionUnhook
	case StateOscString:
		return ActionOscEnd
	case StateApcString:
		return ActionApcEnd
	case StatePmString:
		return ActionPmEnd
	default:
		return ActionNone
	}
}

// entryAction returns the action to fire when entering next.
func entryAction(next State) Action {
	switch next {
	case StateEscape, StateCsiEntry, StateDcsEntry:
		return ActionClear
	case StateDcsPassthrough:
		return ActionHook
	case StateOscString:
		return ActionOscStart
	case StateApcString:
		return ActionApcStart
	case StatePmString:
		return ActionPmStart
	default:
		return ActionNone
	}
}

// step computes the (action, nextState) pair for consuming byte b while in
// state cur, per this state's own table (before the anywhere() override is
// applied by the caller). changesState is false when the byte leaves the
// parser in cur (next == cur), true when it moves to next.
func step(cur State, b byte) (action Action, next State, changesState bool) {
	switch cur {
	case StateGround:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x20 <= b && b <= 0x7f:
			return ActionPrint, cur, false
		}
		return ActionIgnore, cur, false

	case StateEscape:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, StateEscapeIntermediate, true
		case b == 0x5b:
			return ActionNone, StateCsiEntry, true
		case b == 0x5d:
			return ActionNone, StateOscString, true
		case b == 0x50:
			return ActionNone, StateDcsEntry, true
		case b == 0x58:
			return ActionNone, StateSosString, true
		case b == 0x5e:
			return ActionNone, StatePmString, true
		case b == 0x5f:
			return ActionNone, StateApcString, true
		case (0x30 <= b && b <= 0x4f) || (0x51 <= b && b <= 0x57) || b == 0x59 || b == 0x5a || b == 0x5c || (0x60 <= b && b <= 0x7e):
			return ActionEscDispatch, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateEscapeIntermediate:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, cur, false
		case 0x30 <= b && b <= 0x7e:
			return ActionEscDispatch, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateCsiEntry:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x40 <= b && b <= 0x7e:
			return ActionCsiDispatch, StateGround, true
		case (0x30 <= b && b <= 0x39) || b == 0x3b:
			return ActionParam, StateCsiParam, true
		case b == 0x3a:
			return ActionParamSubSeparator, StateCsiParam, true
		case 0x3c <= b && b <= 0x3f:
			return ActionCollectLeader, StateCsiParam, true
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, StateCsiIntermediate, true
		}
		return ActionIgnore, cur, false

	case StateCsiParam:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x30 <= b && b <= 0x39:
			return ActionParamDigit, cur, false
		case b == 0x3b:
			return ActionParamSeparator, cur, false
		case b == 0x3a:
			return ActionParamSubSeparator, cur, false
		case 0x3c <= b && b <= 0x3f:
			return ActionIgnore, StateCsiIgnore, true
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, StateCsiIntermediate, true
		case 0x40 <= b && b <= 0x7e:
			return ActionCsiDispatch, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateCsiIntermediate:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, cur, false
		case 0x40 <= b && b <= 0x7e:
			return ActionCsiDispatch, StateGround, true
		case 0x30 <= b && b <= 0x3f:
			return ActionIgnore, StateCsiIgnore, true
		}
		return ActionIgnore, cur, false

	case StateCsiIgnore:
		switch {
		case isC0Prime(b):
			return ActionExecute, cur, false
		case 0x40 <= b && b <= 0x7e:
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateDcsEntry:
		switch {
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, StateDcsIntermediate, true
		case b == 0x3a:
			return ActionIgnore, StateDcsIgnore, true
		case (0x30 <= b && b <= 0x39) || b == 0x3b:
			return ActionParam, StateDcsParam, true
		case 0x3c <= b && b <= 0x3f:
			return ActionCollectLeader, StateDcsParam, true
		case 0x40 <= b && b <= 0x7e:
			return ActionNone, StateDcsPassthrough, true
		}
		return ActionIgnore, cur, false

	case StateDcsParam:
		switch {
		case b == 0x3b || (0x30 <= b && b <= 0x39):
			return ActionParam, cur, false
		case b == 0x3a || (0x3c <= b && b <= 0x3f):
			return ActionIgnore, StateDcsIgnore, true
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, StateDcsIntermediate, true
		case 0x40 <= b && b <= 0x7e:
			return ActionNone, StateDcsPassthrough, true
		}
		return ActionIgnore, cur, false

	case StateDcsIntermediate:
		switch {
		case 0x20 <= b && b <= 0x2f:
			return ActionCollect, cur, false
		case 0x40 <= b && b <= 0x7e:
			return ActionNone, StateDcsPassthrough, true
		case 0x30 <= b && b <= 0x3f:
			return ActionIgnore, StateDcsIgnore, true
		}
		return ActionIgnore, cur, false

	case StateDcsPassthrough:
		switch {
		case isC0Prime(b) || (0x20 <= b && b <= 0x7e):
			return ActionPut, cur, false
		case b == 0x9c:
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateDcsIgnore:
		if b == 0x9c {
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateOscString:
		switch {
		case 0x20 <= b && b <= 0x7f:
			return ActionOscPut, cur, false
		case b == 0x9c || b == 0x07:
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateSosString:
		if b == 0x9c {
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StateApcString:
		switch {
		case 0x20 <= b && b <= 0x7f:
			return ActionApcPut, cur, false
		case b == 0x9c:
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false

	case StatePmString:
		switch {
		case 0x20 <= b && b <= 0x7f:
			return ActionPmPut, cur, false
		case b == 0x9c:
			return ActionIgnore, StateGround, true
		}
		return ActionIgnore, cur, false
	}
	return ActionIgnore, cur, false
}
