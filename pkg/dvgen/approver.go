package dvgen

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like overwriting an existing
// model file or a populated export directory.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the target name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before overwriting the target.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - target: Human-readable name of what will be overwritten
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
