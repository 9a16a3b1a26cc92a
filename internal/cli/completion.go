package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // value label; non-empty means the flag takes a value
	IsFile    bool     // value is a file path
	IsAlgo    bool     // values come from the engine list
}

// flagRegistry lists every CLI flag for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "x", Help: "Left operand", ValueName: "integer"},
	{Short: "y", Help: "Right operand", ValueName: "integer"},
	{Long: "op", Help: "Operator", Values: []string{"add", "sub", "mul", "div", "mod", "lt", "le", "gt", "ge", "eq", "ne"}, ValueName: "operator"},
	{Long: "verbose", Short: "v", Help: "Display full result value"},
	{Long: "details", Short: "d", Help: "Show result details"},
	{Long: "timeout", Help: "Maximum evaluation time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "algo", Help: "Engine to use", IsAlgo: true, ValueName: "engine"},
	{Long: "karatsuba-threshold", Help: "Karatsuba base-case threshold in digits", Values: []string{"16", "32", "64", "128"}, ValueName: "digits"},
	{Long: "parallel-threshold", Help: "Parallel Karatsuba threshold in digits", Values: []string{"1024", "2048", "4096", "8192"}, ValueName: "digits"},
	{Long: "max-digits", Help: "Maximum operand length", Values: []string{"0", "100000", "1000000"}, ValueName: "digits"},
	{Long: "repl", Help: "Start interactive mode"},
	{Long: "tui", Help: "Start the terminal calculator"},
	{Long: "serve", Help: "Start the HTTP API"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "calibrate", Help: "Run calibration mode"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "env-file", Help: "Environment file to load", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// names returns the flag's spellings as typed on the command line.
func (f FlagCompletion) names() []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

// suggestions returns the values to offer after the flag. algoVar is the
// shell expression holding the engine list.
func (f FlagCompletion) suggestions(algoVar string) string {
	if f.IsAlgo {
		return algoVar
	}
	return strings.Join(f.Values, " ")
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish", "powershell" or "ps") to out.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	case "powershell", "ps":
		script = powerShellCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		opts = append(opts, f.names()...)
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, f.names()...)
		case f.IsAlgo || len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(f.names(), "|"), f.suggestions("${algorithms}"))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef bigcalc

# Zsh completion script for bigcalc
# Place this file in a directory of your $fpath

_bigcalc() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats one _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = ":" + f.ValueName + ":_files"
	case f.IsAlgo || len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, f.suggestions("$algorithms"))
	case f.ValueName != "":
		value = ":" + f.ValueName + ":"
	}

	names := f.names()
	if len(names) == 2 {
		return fmt.Sprintf("        '(%s)'{%s}'[%s]%s'", strings.Join(names, " "), strings.Join(names, ","), f.Help, value)
	}
	return fmt.Sprintf("        '%s[%s]%s'", names[0], f.Help, value)
}

func fishCompletion(algorithms []string) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for bigcalc\n")
	b.WriteString("# Add this to ~/.config/fish/completions/bigcalc.fish\n\n")
	b.WriteString("complete -c bigcalc -f\n")

	algoList := strings.Join(algorithms, " ") + " all"
	for _, f := range flagRegistry {
		b.WriteString("complete -c bigcalc")
		if f.Short != "" {
			b.WriteString(" -s " + f.Short)
		}
		if f.Long != "" {
			b.WriteString(" -l " + f.Long)
		}
		fmt.Fprintf(&b, " -d '%s'", f.Help)
		switch {
		case f.IsFile:
			b.WriteString(" -rF")
		case f.IsAlgo || len(f.Values) > 0:
			fmt.Fprintf(&b, " -xa '%s'", f.suggestions(algoList))
		case f.ValueName != "":
			b.WriteString(" -x")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func powerShellCompletion(algorithms []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range f.names() {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		if f.IsFile || (!f.IsAlgo && len(f.Values) == 0) {
			continue
		}
		source := "$bigcalcAlgorithms"
		if !f.IsAlgo {
			source = "@(" + psQuote(f.Values) + ")"
		}
		switches = append(switches, fmt.Sprintf(`        '%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.names()[len(f.names())-1], source))
	}

	return fmt.Sprintf(`# PowerShell completion script for bigcalc
# Add this to your $PROFILE

$bigcalcAlgorithms = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'bigcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 1) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(algorithms), strings.Join(options, "\n"), strings.Join(switches, "\n"))
}

func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
