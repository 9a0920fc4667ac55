package calc

// Eval imports the host tree rooted at root and evaluates it.
// The arena lives only for the duration of the call.
func Eval(root Source, opts ...Option) (float64, error) {
	arena, err := Import(root, opts...)
	if err != nil {
		return 0, err
	}
	return Evaluate(arena), nil
}
