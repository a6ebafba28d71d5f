package ledger

// Program executes instructions addressed to it.
type Program interface {
	Execute(ctx *InvokeContext, data []byte) error
}

// ProgramFunc adapts a function into a Program.
type ProgramFunc func(ctx *InvokeContext, data []byte) error

func (f ProgramFunc) Execute(ctx *InvokeContext, data []byte) error {
	return f(ctx, data)
}
