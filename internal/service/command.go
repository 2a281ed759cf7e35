package service

import "strings"

// CommandKind tags a parsed loyalty command.
type CommandKind string

const (
	CommandJoin       CommandKind = "JOIN"
	CommandStatus     CommandKind = "STATUS"
	CommandStamp      CommandKind = "STAMP"
	CommandReward     CommandKind = "REWARD"
	CommandRedeem     CommandKind = "REDEEM"
	CommandUpdateName CommandKind = "UPDATE_NAME"
	CommandHelp       CommandKind = "HELP"
	CommandFreeText   CommandKind = "FREE_TEXT"
)

// Command is the tagged result of parsing one inbound message. Arg carries
// the customer ID for STAMP/REDEEM (upper-cased), the new name for
// UPDATE NAME (original casing), or the trimmed raw text for FREE_TEXT.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand maps a raw message onto a Command. Matching is
// case-insensitive; name and free-text arguments keep their original casing.
func ParseCommand(raw string) Command {
	trimmed := strings.TrimSpace(raw)
	upper := strings.ToUpper(trimmed)

	switch upper {
	case "JOIN":
		return Command{Kind: CommandJoin}
	case "STATUS":
		return Command{Kind: CommandStatus}
	case "REWARD":
		return Command{Kind: CommandReward}
	case "HELP", "COMMANDS":
		return Command{Kind: CommandHelp}
	case "STAMP":
		return Command{Kind: CommandStamp}
	case "REDEEM":
		return Command{Kind: CommandRedeem}
	case "UPDATE NAME":
		return Command{Kind: CommandUpdateName}
	}

	if strings.HasPrefix(upper, "STAMP ") {
		return Command{Kind: CommandStamp, Arg: firstArgUpper(trimmed)}
	}
	if strings.HasPrefix(upper, "REDEEM ") {
		return Command{Kind: CommandRedeem, Arg: firstArgUpper(trimmed)}
	}
	if strings.HasPrefix(upper, "UPDATE NAME ") {
		return Command{Kind: CommandUpdateName, Arg: strings.TrimSpace(trimmed[len("UPDATE NAME "):])}
	}

	return Command{Kind: CommandFreeText, Arg: trimmed}
}

// firstArgUpper extracts the token after the command word. Customer IDs are
// stored upper-case, so the argument is folded to match.
func firstArgUpper(trimmed string) string {
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return ""
	}
	return strings.ToUpper(fields[1])
}
