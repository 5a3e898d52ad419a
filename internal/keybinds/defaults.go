package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTableBindings(r)
	registerFilterBindings(r)
	registerSearchBindings(r)
	registerCardBindings(r)
	registerPanelBindings(r)
	registerFormBindings(r)
	registerModalBindings(r)
	registerConfirmBindings(r)
	registerHistoryBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes, including
// while a text input has focus
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.RegisterMultiple(ContextGlobal, []string{"f1", "alt+1"}, ActionTabViewAll)
	r.RegisterMultiple(ContextGlobal, []string{"f2", "alt+2"}, ActionTabSearch)
	r.RegisterMultiple(ContextGlobal, []string{"f3", "alt+3"}, ActionTabCreate)
}

// registerTabKeys binds the plain tab keys, only for contexts without a focused input
func registerTabKeys(r *Registry, ctx Context) {
	r.Register(ctx, "q", ActionQuit)
	r.Register(ctx, "1", ActionTabViewAll)
	r.Register(ctx, "2", ActionTabSearch)
	r.Register(ctx, "3", ActionTabCreate)
	r.Register(ctx, "tab", ActionTabNext)
	r.Register(ctx, "shift+tab", ActionTabPrev)
	r.Register(ctx, "H", ActionOpenHistory)
}

func registerTableBindings(r *Registry) {
	registerTabKeys(r, ContextTable)

	r.RegisterMultiple(ContextTable, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextTable, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextTable, "g", ActionGoToTopPrepare)
	r.Register(ContextTable, "gg", ActionGoToTop)
	r.Register(ContextTable, "home", ActionGoToTop)
	r.RegisterMultiple(ContextTable, []string{"G", "end"}, ActionGoToBottom)

	r.RegisterMultiple(ContextTable, []string{"e", "enter"}, ActionEdit)
	r.RegisterMultiple(ContextTable, []string{"d", "delete"}, ActionDelete)
	r.Register(ContextTable, "y", ActionCopy)
	r.Register(ContextTable, "r", ActionReload)
	r.Register(ContextTable, "/", ActionOpenFilter)
}

func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionBlurInput)
	r.Register(ContextFilter, "esc", ActionClearInput)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionSubmit)
	r.Register(ContextSearch, "esc", ActionBlurInput)
}

func registerCardBindings(r *Registry) {
	registerTabKeys(r, ContextCard)

	r.Register(ContextCard, "e", ActionEdit)
	r.RegisterMultiple(ContextCard, []string{"d", "delete"}, ActionDelete)
	r.Register(ContextCard, "y", ActionCopy)
	r.RegisterMultiple(ContextCard, []string{"i", "/", "enter"}, ActionFocusInput)
}

func registerPanelBindings(r *Registry) {
	registerTabKeys(r, ContextPanel)

	r.RegisterMultiple(ContextPanel, []string{"i", "enter"}, ActionFocusInput)
}

func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "enter", ActionSubmit)
	r.Register(ContextForm, "esc", ActionBlurInput)
}

func registerModalBindings(r *Registry) {
	r.RegisterMultiple(ContextModal, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextModal, []string{"shift+tab", "up"}, ActionPrevField)
	r.RegisterMultiple(ContextModal, []string{"enter", "ctrl+s"}, ActionSubmit)
	r.Register(ContextModal, "esc", ActionCloseModal)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "q", "H"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionScrollDown)
}
