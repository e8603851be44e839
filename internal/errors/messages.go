package errors

import "fmt"

// MissingInstanceID is returned when a command needs a Beams instance ID and none is configured
func MissingInstanceID() *CLIError {
	return NewConfigError(
		"no Pusher Beams instance ID configured",
		"Pass --instance-id <id>",
		"Or set BEAMSCHECK_INSTANCE_ID in the environment",
		"Or add \"instance_id\" to .beamscheck/config.json",
	)
}

// InvalidPermission is returned for an unknown --permission value
func InvalidPermission(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid permission %q", value),
		"beamscheck notify-test --permission <prompt|granted|denied|default>",
		"Use one of: prompt, granted, denied, default",
	)
}

// InvalidOutputFormat is returned for an unknown --output value
func InvalidOutputFormat(value string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format %q", value),
		"Use one of: text, json, yaml",
	)
}

// ConfigFileNotFound is returned when an explicit --config path does not exist
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the --config path",
		"Omit --config to use defaults",
	)
}

// ConfigParseError is returned when a config file cannot be parsed
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to parse config file %s: %v", path, err),
		Remediation: []string{
			"Check the file is valid JSON",
			"Run 'beamscheck doctor' to validate configuration",
		},
		Err: err,
	}
}

// StateDirNotWritable is returned when the device state directory cannot be written
func StateDirNotWritable(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("state directory is not writable: %s", path),
		Remediation: []string{
			"Check the directory permissions",
			"Set a different directory with --state-dir or BEAMSCHECK_STATE_DIR",
		},
		Err: err,
	}
}

// SubscriptionFailed is returned when the subscription workflow stops at a stage
func SubscriptionFailed(stage string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("subscription failed at stage %q: %v", stage, err),
		Remediation: []string{
			"Check the instance ID is correct",
			"Make sure 'beamscheck serve' is running at the configured site URL",
			"Re-run with --debug for the full diagnostic log",
		},
		Err: err,
	}
}

// ServerStartFailed is returned when the HTTP server cannot listen
func ServerStartFailed(addr string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("failed to start server on %s: %v", addr, err),
		Remediation: []string{
			"Check that no other process is using the port",
			"Choose another address with --addr",
		},
		Err: err,
	}
}
