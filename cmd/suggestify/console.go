package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mind-engage/suggestify/internal/quiz"
)

// console reads answers line by line. When input is not a terminal the
// answer is echoed after the prompt so piped transcripts stay readable.
type console struct {
	in   *bufio.Scanner
	out  io.Writer
	echo bool
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewScanner(in), out: out, echo: !isTerminal(in)}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *console) println(a ...any)               { fmt.Fprintln(c.out, a...) }
func (c *console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }

// ask prints prompt and returns the next trimmed line; ok is false at EOF.
func (c *console) ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	line := strings.TrimSpace(c.in.Text())
	if c.echo {
		fmt.Fprintln(c.out, line)
	}
	return line, true
}

// runQuiz asks every question, re-prompting until a listed key is given.
// Input ending early leaves the remaining questions unanswered.
func (c *console) runQuiz(b quiz.Battery) []string {
	answers := make([]string, 0, b.Len())
	for i, q := range b.Questions() {
		c.printf("\n%d. %s\n", i+1, q.Prompt)
		for _, o := range q.Options {
			c.printf("%s: %s\n", o.Key, o.Text)
		}
		keys := q.Keys()
		prompt := "Your answer (" + strings.Join(keys, "/") + "): "
		for {
			line, ok := c.ask(prompt)
			if !ok {
				return answers
			}
			if _, valid := q.Option(line); valid {
				answers = append(answers, strings.ToUpper(line))
				break
			}
			c.printf("Invalid option. Please choose %s.\n", joinOr(keys))
		}
	}
	return answers
}

func joinOr(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	}
	return strings.Join(keys[:len(keys)-1], ", ") + ", or " + keys[len(keys)-1]
}
