package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/rules"
	"github.com/jwebster45206/investigator-tracker/pkg/sheet"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
)

type commandType string

const (
	cmdHelp        commandType = "help"
	cmdAdd         commandType = "add"
	cmdRemove      commandType = "remove"
	cmdSelect      commandType = "select"
	cmdNext        commandType = "next"
	cmdPrev        commandType = "prev"
	cmdSet         commandType = "set"
	cmdName        commandType = "name"
	cmdCharacter   commandType = "character"
	cmdSkills      commandType = "skills"
	cmdSkill       commandType = "skill"
	cmdInventory   commandType = "inventory"
	cmdBackground  commandType = "bg"
	cmdStatus      commandType = "status"
	cmdCheck       commandType = "check"
	cmdIndefinite  commandType = "indefinite"
	cmdUnderlying  commandType = "underlying"
	cmdStabilize   commandType = "stabilize"
	cmdDestabilize commandType = "destabilize"
	cmdSession     commandType = "session"
	cmdGroup       commandType = "group"
	cmdRoll        commandType = "roll"
	cmdCopy        commandType = "copy"
	cmdQuit        commandType = "quit"
	cmdNone        commandType = "" // not a recognised command
)

var knownCommands = map[string]commandType{
	"/help":        cmdHelp,
	"/?":           cmdHelp,
	"/add":         cmdAdd,
	"/new":         cmdAdd,
	"/remove":      cmdRemove,
	"/delete":      cmdRemove,
	"/select":      cmdSelect,
	"/next":        cmdNext,
	"/prev":        cmdPrev,
	"/set":         cmdSet,
	"/name":        cmdName,
	"/character":   cmdCharacter,
	"/char":        cmdCharacter,
	"/skills":      cmdSkills,
	"/skill":       cmdSkill,
	"/inventory":   cmdInventory,
	"/inv":         cmdInventory,
	"/bg":          cmdBackground,
	"/background":  cmdBackground,
	"/status":      cmdStatus,
	"/check":       cmdCheck,
	"/indefinite":  cmdIndefinite,
	"/underlying":  cmdUnderlying,
	"/stabilize":   cmdStabilize,
	"/destabilize": cmdDestabilize,
	"/session":     cmdSession,
	"/group":       cmdGroup,
	"/roll":        cmdRoll,
	"/copy":        cmdCopy,
	"/quit":        cmdQuit,
	"/exit":        cmdQuit,
}

// statAliases maps the short sheet abbreviations onto stat keys.
var statAliases = map[string]string{
	"str": actor.StatStrength,
	"dex": actor.StatDexterity,
	"int": actor.StatIntelligence,
	"con": actor.StatConstitution,
	"pow": actor.StatPower,
	"app": actor.StatAppearance,
	"edu": actor.StatEducation,
	"siz": actor.StatSize,
	"hp":  actor.StatHealth,
	"san": actor.StatSanity,
}

const helpText = `Investigators
  /add                      add a new investigator
  /remove                   remove the selected investigator
  /select N, /next, /prev   change the selection (also ↑/↓)

Editing the selected investigator
  /set STAT VALUE           VALUE is N, +N, -N, *N or /N (e.g. /set hp -3)
  /name TEXT, /character TEXT, /skills TEXT, /inventory TEXT
                            /skills "A: 50; B: 30" replaces the skill list
  /skill NAME VALUE         set a skill (0-100); /skill NAME removes it
  /bg SECTION TEXT          sections: description ideology allies places
                            possessions traits injuries phobias_manias
                            tomes encounters
  /roll STAT|SKILL [D100]   percentile check against a stat or skill

Keeper
  /session start|end
  /status STATUS on|off     e.g. /status major_wound on
  /check majorwound|tempinsanity|dying pass|fail
  /indefinite               confirm indefinite insanity
  /underlying yes|no        answer the underlying insanity question
  /stabilize, /destabilize
  /group start|loss N|resume|status

Other
  /copy                     copy the sheet as markdown
  /quit                     save and quit (also Esc, Ctrl+C)
  PgUp/PgDn                 scroll the sheet`

// CommandResult is the outcome of one command line.
type CommandResult struct {
	Handled bool   // False when the input was not a known command
	Message string // Text for the status line
	Detail  string // Long text shown in place of the sheet
	IsError bool   // Message describes a refused command
	Quit    bool   // The user asked to quit
}

func success(format string, args ...any) CommandResult {
	return CommandResult{Handled: true, Message: fmt.Sprintf(format, args...)}
}

func refuse(format string, args ...any) CommandResult {
	return CommandResult{Handled: true, Message: fmt.Sprintf(format, args...), IsError: true}
}

// Commander executes command lines against the roster and keeper.
type Commander struct {
	roster *state.Roster
	keeper *rules.Keeper
	group  *rules.GroupCheck
	copy   func(string) error
}

// NewCommander creates a commander. copyFn receives the sheet for /copy.
func NewCommander(roster *state.Roster, keeper *rules.Keeper, copyFn func(string) error) *Commander {
	return &Commander{roster: roster, keeper: keeper, copy: copyFn}
}

// parseCommand splits input into the command type and the argument text.
func parseCommand(input string) (commandType, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return cmdNone, ""
	}
	word, args, _ := strings.Cut(trimmed, " ")
	if cmd, ok := knownCommands[strings.ToLower(word)]; ok {
		return cmd, strings.TrimSpace(args)
	}
	return cmdNone, ""
}

// Execute runs one command line.
func (c *Commander) Execute(input string) CommandResult {
	cmd, args := parseCommand(input)

	switch cmd {
	case cmdNone:
		return CommandResult{Handled: false, Message: "Unknown command. Type /help for the list.", IsError: true}
	case cmdHelp:
		return CommandResult{Handled: true, Message: "Enter any command to return to the sheet.", Detail: helpText}
	case cmdAdd:
		inv := c.roster.Add()
		c.roster.Select(c.roster.Len() - 1)
		return success("Added %s.", inv.Label())
	case cmdRemove:
		inv := c.roster.Selected()
		if inv == nil {
			return refuse("No investigator selected.")
		}
		c.roster.RemoveSelected()
		return success("Removed %s.", inv.Label())
	case cmdSelect:
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 || n > c.roster.Len() {
			return refuse("Usage: /select N where N is 1 to %d.", c.roster.Len())
		}
		c.roster.Select(n - 1)
		return success("Selected %s.", c.roster.Selected().Label())
	case cmdNext:
		return c.step(1)
	case cmdPrev:
		return c.step(-1)
	case cmdSet:
		return c.setStat(args)
	case cmdName:
		return c.commitText("Name", args, c.roster.CommitName)
	case cmdCharacter:
		return c.commitText("Character", args, c.roster.CommitCharacter)
	case cmdSkills:
		if skills, ok := actor.ParseSkillLines(args); ok {
			if !c.roster.ReplaceSkills(skills) {
				return refuse("No investigator selected.")
			}
			return success("Skill list replaced with %d skills.", len(skills))
		}
		return c.commitText("Skills", args, c.roster.CommitSkills)
	case cmdSkill:
		return c.setSkill(args)
	case cmdInventory:
		return c.commitText("Inventory", args, c.roster.CommitInventory)
	case cmdBackground:
		key, text, _ := strings.Cut(args, " ")
		key = strings.ToLower(key)
		if !actor.IsBackgroundKey(key) {
			return refuse("Unknown background section %q.", key)
		}
		return c.commitText(actor.BackgroundLabels[key], strings.TrimSpace(text), func(s string) bool {
			return c.roster.CommitBackground(key, s)
		})
	case cmdStatus:
		return c.setStatus(args)
	case cmdCheck:
		return c.resolveCheck(args)
	case cmdIndefinite:
		return c.withSelected(func(inv *actor.Investigator) CommandResult {
			if !c.keeper.ConfirmIndefiniteInsanity(inv) {
				return refuse("%s is dead.", inv.Character)
			}
			return success("Indefinite insanity confirmed for %s.", inv.Character)
		})
	case cmdUnderlying:
		return c.withSelected(func(inv *actor.Investigator) CommandResult {
			activate, valid := parseSwitch(args)
			if !valid {
				return refuse("Usage: /underlying yes|no")
			}
			if !c.keeper.ResolveUnderlying(inv, activate) {
				return refuse("%s is dead.", inv.Character)
			}
			return success("Underlying insanity answered for %s.", inv.Character)
		})
	case cmdStabilize:
		return c.withSelected(func(inv *actor.Investigator) CommandResult {
			if !c.keeper.Stabilize(inv) {
				return refuse("%s is not dying.", inv.Character)
			}
			return success("Stabilized %s.", inv.Character)
		})
	case cmdDestabilize:
		return c.withSelected(func(inv *actor.Investigator) CommandResult {
			if !c.keeper.Destabilize(inv) {
				return refuse("%s is not stabilized.", inv.Character)
			}
			return success("%s destabilized.", inv.Character)
		})
	case cmdSession:
		return c.session(args)
	case cmdGroup:
		return c.groupCheck(args)
	case cmdRoll:
		return c.roll(args)
	case cmdCopy:
		return c.withSelected(func(inv *actor.Investigator) CommandResult {
			if c.copy == nil {
				return refuse("Clipboard unavailable.")
			}
			if err := c.copy(sheet.Markdown(inv)); err != nil {
				return refuse("Copy failed: %v", err)
			}
			return success("Copied the sheet of %s.", inv.Character)
		})
	case cmdQuit:
		return CommandResult{Handled: true, Quit: true}
	}
	return CommandResult{Handled: false}
}

func (c *Commander) withSelected(fn func(inv *actor.Investigator) CommandResult) CommandResult {
	inv := c.roster.Selected()
	if inv == nil {
		return refuse("No investigator selected.")
	}
	return fn(inv)
}

func (c *Commander) step(delta int) CommandResult {
	if c.roster.Len() == 0 {
		return refuse("No investigators.")
	}
	i := c.roster.SelectedIndex()
	if i == state.NoSelection {
		i = 0
	} else {
		i = (i + delta + c.roster.Len()) % c.roster.Len()
	}
	c.roster.Select(i)
	return success("Selected %s.", c.roster.Selected().Label())
}

func (c *Commander) commitText(field, text string, commit func(string) bool) CommandResult {
	if !commit(text) {
		return refuse("No investigator selected.")
	}
	if text == "" {
		return success("%s cleared.", field)
	}
	return success("%s updated.", field)
}

func (c *Commander) setStat(args string) CommandResult {
	word, expr, _ := strings.Cut(args, " ")
	key := lookupStat(word)
	if key == "" {
		return refuse("Unknown stat %q.", word)
	}
	if c.roster.Selected() == nil {
		return refuse("No investigator selected.")
	}
	value, valid := c.roster.CommitStat(key, expr)
	if !valid {
		return refuse("Ignored %q; %s stays %d.", strings.TrimSpace(expr), sheet.StatLabel(key), value)
	}
	return success("%s is now %d.", sheet.StatLabel(key), value)
}

func (c *Commander) setStatus(args string) CommandResult {
	name, value, _ := strings.Cut(args, " ")
	status, found := lookupStatus(name)
	if !found {
		return refuse("Unknown status %q.", name)
	}
	on, valid := parseSwitch(value)
	if !valid {
		return refuse("Usage: /status STATUS on|off")
	}
	return c.withSelected(func(inv *actor.Investigator) CommandResult {
		if !c.keeper.ConfirmStatus(inv, status, on) {
			return refuse("%s is dead; only the dead status can change.", inv.Character)
		}
		verb := "cleared"
		if status.Active(inv) {
			verb = "set"
		}
		return success("%s %s for %s.", status.Label(), verb, inv.Character)
	})
}

func (c *Commander) resolveCheck(args string) CommandResult {
	kind, outcome, _ := strings.Cut(strings.ToLower(args), " ")
	var passed bool
	switch strings.TrimSpace(outcome) {
	case "pass", "passed", "success":
		passed = true
	case "fail", "failed", "failure":
		passed = false
	default:
		return refuse("Usage: /check majorwound|tempinsanity|dying pass|fail")
	}

	return c.withSelected(func(inv *actor.Investigator) CommandResult {
		var done bool
		switch normalizeKey(kind) {
		case "majorwound", "mw":
			done = c.keeper.ResolveMajorWoundCheck(inv, passed)
		case "tempinsanity", "temporaryinsanity", "temp":
			done = c.keeper.ResolveTempInsanityCheck(inv, passed)
		case "dying":
			done = c.keeper.ResolveDyingCheck(inv, passed)
		default:
			return refuse("Unknown check %q.", kind)
		}
		if !done {
			return refuse("That check does not apply to %s.", inv.Character)
		}
		return success("Check resolved for %s.", inv.Character)
	})
}

func (c *Commander) session(args string) CommandResult {
	switch strings.ToLower(args) {
	case "start":
		if !c.keeper.StartSession(c.roster) {
			return refuse("A session is already running.")
		}
		return success("Session started.")
	case "end", "stop":
		if !c.keeper.EndSession(c.roster) {
			return refuse("No session is running.")
		}
		c.group = nil
		return success("Session ended.")
	}
	return refuse("Usage: /session start|end")
}

func (c *Commander) groupCheck(args string) CommandResult {
	sub, rest, _ := strings.Cut(strings.ToLower(args), " ")
	switch sub {
	case "start":
		if c.group != nil && !c.group.Done() {
			return refuse("A group check is already running.")
		}
		g, err := c.keeper.StartGroupCheck(c.roster)
		if err != nil {
			return refuse("Cannot start a group check: %v.", err)
		}
		c.group = g
		return c.groupStatus()
	case "loss":
		if c.group == nil {
			return refuse("No group check is running.")
		}
		loss, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return refuse("Usage: /group loss N")
		}
		if err := c.group.ApplyLoss(loss); err != nil {
			return refuse("%v.", err)
		}
		return c.groupStatus()
	case "resume":
		if c.group == nil {
			return refuse("No group check is running.")
		}
		if err := c.group.Resume(); err != nil {
			return refuse("%v.", err)
		}
		return c.groupStatus()
	case "status", "":
		if c.group == nil {
			return refuse("No group check is running.")
		}
		return c.groupStatus()
	}
	return refuse("Usage: /group start|loss N|resume|status")
}

func (c *Commander) groupStatus() CommandResult {
	g := c.group
	g.Refresh()
	inv := g.Current()
	if g.Done() || inv == nil {
		c.group = nil
		return success("Group check finished.")
	}
	if g.Paused() {
		return success("Group check paused on %s. Resolve the insanity check, then /group resume.", inv.Character)
	}
	pos, total := g.Progress()
	return success("Group check %d/%d: enter the SAN loss for %s with /group loss N.", pos, total, inv.Character)
}

func (c *Commander) setSkill(args string) CommandResult {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return refuse("Usage: /skill NAME VALUE")
	}
	return c.withSelected(func(inv *actor.Investigator) CommandResult {
		value, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil || len(fields) == 1 {
			name := strings.Join(fields, " ")
			if !c.roster.RemoveSkill(name) {
				return refuse("Unknown skill %q.", name)
			}
			return success("Removed skill %s.", name)
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		if !c.roster.CommitSkill(name, value) {
			return refuse("Skill values run from %d to %d.", actor.MinSkill, actor.MaxSkill)
		}
		return success("%s is now %d.", name, value)
	})
}

func (c *Commander) roll(args string) CommandResult {
	return c.withSelected(func(inv *actor.Investigator) CommandResult {
		label, value, rollText, found := checkTarget(inv, args)
		if !found {
			return refuse("Unknown stat or skill %q.", strings.TrimSpace(args))
		}
		if inv.Statuses.Dead {
			return refuse("%s is dead and cannot make checks.", inv.Character)
		}
		roll := c.keeper.Roller().Roll(100)
		if rollText = strings.TrimSpace(rollText); rollText != "" {
			n, err := strconv.Atoi(rollText)
			if err != nil {
				return refuse("Roll must be a number between 1 and 100.")
			}
			roll = n
		}
		result, err := rules.ResolveCheck(value, roll)
		if errors.Is(err, rules.ErrInvalidRoll) {
			return refuse("Roll must be a number between 1 and 100.")
		}
		return success("%s (%d%%): rolled %d, %s", label, value, roll, result)
	})
}

// checkTarget resolves the /roll arguments to a stat, or failing that a
// skill. Skill names may hold spaces, so the whole text is tried first and
// then everything but a trailing roll.
func checkTarget(inv *actor.Investigator, args string) (label string, value int, rollText string, found bool) {
	word, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if key := lookupStat(word); key != "" {
		return sheet.StatLabel(key), inv.Stats.Get(key), rest, true
	}
	fields := strings.Fields(args)
	for n := len(fields); n > 0 && n >= len(fields)-1; n-- {
		if name, v, ok := inv.Skills.Lookup(strings.Join(fields[:n], " ")); ok {
			return name, v, strings.Join(fields[n:], " "), true
		}
	}
	return "", 0, "", false
}

func lookupStat(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	if actor.IsStat(w) {
		return w
	}
	return statAliases[w]
}

func lookupStatus(name string) (rules.Status, bool) {
	n := normalizeKey(name)
	for _, s := range rules.AllStatuses {
		if normalizeKey(string(s)) == n {
			return s, true
		}
	}
	return "", false
}

func normalizeKey(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func parseSwitch(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y", "true", "1":
		return true, true
	case "off", "no", "n", "false", "0":
		return false, true
	}
	return false, false
}
