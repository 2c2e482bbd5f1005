package terminal

// Output interface is to handle progress and status lines for different output points
type Output interface {
	Println(input string)
	Printf(format string, args ...interface{})
	Print(input string)
	Remove(size int)

	// Rewrite replaces the current line with input
	Rewrite(input string)
	Success(format string, args ...interface{})
	Failure(format string, args ...interface{})
}
