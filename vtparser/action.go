package vtparser

// Action identifies what the state machine wants the caller to do with
// the current input byte, matching the action catalog in spec.md §4.2.
type Action uint8

const (
	ActionNone Action = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionClear
	ActionCollect
	ActionCollectLeader
	ActionParam
	ActionParamDigit
	ActionParamSeparator
	ActionParamSubSeparator
	ActionEscDispatch
	ActionCsiDispatch
	ActionHook
	ActionPut
	ActionUnhook
	ActionOscStart
	ActionOscPut
	ActionOscEnd
	ActionApcStart
	ActionApcPut
	ActionApcEnd
	ActionPmStart
	ActionPmPut
	ActionPmEnd
)

func (a Action) String() string {
	switch a {
	case ActionIgnore:
		return "ignore"
	case ActionPrint:
		return "print"
	case ActionExecute:
		return "execute"
	case ActionClear:
		return "clear"
	case ActionCollect:
		return "collect"
	case ActionCollectLeader:
		return "collect_leader"
	case ActionParam:
		return "param"
	case ActionParamDigit:
		return "param_digit"
	case ActionParamSeparator:
		return "param_separator"
	case ActionParamSubSeparator:
		return "param_sub_separator"
	case ActionEscDispatch:
		return "esc_dispatch"
	case ActionCsiDispatch:
		return "csi_dispatch"
	case ActionHook:
		return "hook"
	case ActionPut:
		return "put"
	case ActionUnhook:
		return "unhook"
	case ActionOscStart:
		return "osc_start"
	case ActionOscPut:
		return "osc_put"
	case ActionOscEnd:
		return "osc_end"
	case ActionApcStart:
		return "apc_start"
	case ActionApcPut:
		return "apc_put"
	case ActionApcEnd:
		return "apc_end"
	case ActionPmStart:
		return "pm_start"
	case ActionPmPut:
		return "pm_put"
	case ActionPmEnd:
		return "pm_end"
	default:
		return "none"
	}
}

// Event is one (action, byte) pair the state machine emits while
// consuming a single input byte; a byte can emit more than one event
// (e.g. an exit action from the old state followed by an entry action for
// the new one), so Feed returns a slice.
type Event struct {
	Action Action
	Byte   byte
}
