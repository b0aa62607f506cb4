package wire

// CommandKind discriminates outbound commands.
type CommandKind string

const (
	// CommandCodeExecution asks the engine to execute code.
	CommandCodeExecution CommandKind = "codeExecution"
	// CommandGetWorkspaceVariables asks for the current workspace bindings.
	CommandGetWorkspaceVariables CommandKind = "getWorkspaceVariables"
	// CommandGetVariableValue asks for the rendered value of one binding.
	CommandGetVariableValue CommandKind = "getVariableValue"
	// CommandConnectionTest verifies the duplex channel end to end.
	CommandConnectionTest CommandKind = "connectionTest"
	// CommandActivateProject asks the engine to activate a project environment.
	CommandActivateProject CommandKind = "activateProject"
	// CommandDeactivateProject asks the engine to leave the active project environment.
	CommandDeactivateProject CommandKind = "deactivateProject"
)

// Command is a single-line outbound command object.
type Command struct {
	Command       CommandKind   `json:"command"`
	ID            string        `json:"id"`
	Code          string        `json:"code,omitempty"`
	ExecutionType ExecutionType `json:"executionType,omitempty"`
	Breakpoints   []int         `json:"breakpoints,omitempty"`
	Name          string        `json:"name,omitempty"`
	Path          string        `json:"path,omitempty"`
}

// NewCodeExecution builds a code execution command.
func NewCodeExecution(id, code string, execType ExecutionType, breakpoints []int) Command {
	return Command{
		Command:       CommandCodeExecution,
		ID:            id,
		Code:          code,
		ExecutionType: execType,
		Breakpoints:   breakpoints,
	}
}

// NewGetWorkspaceVariables builds a workspace refresh command.
func NewGetWorkspaceVariables(id string) Command {
	return Command{Command: CommandGetWorkspaceVariables, ID: id}
}

// NewGetVariableValue builds a single-binding fetch command.
func NewGetVariableValue(id, name string) Command {
	return Command{Command: CommandGetVariableValue, ID: id, Name: name}
}

// NewConnectionTest builds a connection test command.
func NewConnectionTest(id string) Command {
	return Command{Command: CommandConnectionTest, ID: id}
}

// NewActivateProject builds a project activation command.
func NewActivateProject(id, path string) Command {
	return Command{Command: CommandActivateProject, ID: id, Path: path}
}

// NewDeactivateProject builds a project deactivation command.
func NewDeactivateProject(id string) Command {
	return Command{Command: CommandDeactivateProject, ID: id}
}
