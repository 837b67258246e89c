package drive

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosAtaCommand triggers when the controller starts decoding an ATA
// command. The item is the command code.
var HookPosAtaCommand = &HookPos{Name: "AtaCommand"}

// HookPosSpiCommand triggers when a complete packet command is dispatched.
// The item is the command code, the detail the 12-byte packet.
var HookPosSpiCommand = &HookPos{Name: "SpiCommand"}

// HookPosReadChunk triggers whenever the sector reader produces a chunk of
// CD_READ data. The item is a ReadChunk.
var HookPosReadChunk = &HookPos{Name: "ReadChunk"}

// HookPosCommandComplete triggers when a command finishes and the
// controller returns to the command-read state.
var HookPosCommandComplete = &HookPos{Name: "CommandComplete"}

// HookCtx is the context that holds all the information about the site
// that a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable
// object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
