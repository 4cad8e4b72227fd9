package log

import (
	"fmt"
	"io"
	"os"
)

var printLogger Printer = NewPrinter(os.Stdout)

var debugLogger Printer = NewPrinter(os.Stderr)
var infoLogger Printer = NewPrinter(os.Stderr)
var errLogger Printer = NewPrinter(os.Stderr)
var promptLogger Printer = NewPrinter(os.Stderr)

type Printer interface {
	Printf(string, ...any)
	Print(...any)
	Println(...any)

	SetEnabled(bool)
	IsEnabled() bool

	SetLogger(io.Writer)
}

func NewPrinter(w io.Writer) Printer {
	return &printer{
		out: w,
		on:  true,
	}
}

type printer struct {
	out io.Writer
	on  bool

	logger io.Writer
}

func (r *printer) SetEnabled(b bool) {
	r.on = b
}

func (r *printer) IsEnabled() bool {
	return r.on
}

func (r *printer) Printf(format string, a ...any) {
	if r.on {
		fmt.Fprintf(r.out, format, a...)
	}
	if r.logger != nil {
		fmt.Fprintf(r.logger, format, a...)
	}
}

func (r *printer) Print(a ...any) {
	if r.on {
		fmt.Fprint(r.out, a...)
	}
	if r.logger != nil {
		fmt.Fprint(r.logger, a...)
	}
}

func (r *printer) Println(a ...any) {
	if r.on {
		fmt.Fprintln(r.out, a...)
	}
	if r.logger != nil {
		fmt.Fprintln(r.logger, a...)
	}
}

func (r *printer) SetLogger(w io.Writer) {
	r.logger = w
}

// prompter
func Promptf(format string, a ...any) {
	promptLogger.Printf(format, a...)
}

// Printer for standard output
func Printf(format string, a ...any) {
	printLogger.Printf(format, a...)
}

func Print(a ...any) {
	printLogger.Print(a...)
}

func Println(a ...any) {
	printLogger.Println(a...)
}

// Debug logger
func Debugf(format string, a ...any) {
	debugLogger.Printf(format, a...)
}

func Debugln(a ...any) {
	debugLogger.Println(a...)
}

// Info logger
func Infof(format string, a ...any) {
	infoLogger.Printf(format, a...)
}

func Infoln(a ...any) {
	infoLogger.Println(a...)
}

// Error logger
func Errorf(format string, a ...any) {
	errLogger.Printf(format, a...)
}

func Errorln(a ...any) {
	errLogger.Println(a...)
}

type Level int

const (
	Quiet Level = iota
	Normal
	Verbose
)

var logLevel Level

func IsVerbose() bool {
	return logLevel == Verbose
}

func IsQuiet() bool {
	return logLevel == Quiet
}

func IsNormal() bool {
	return logLevel == Normal
}

func SetLogLevel(level Level) {
	logLevel = level

	// stdout
	printLogger.SetEnabled(true)

	// stderr
	switch level {
	case Quiet:
		debugLogger.SetEnabled(false)
		infoLogger.SetEnabled(false)
		errLogger.SetEnabled(false)
		promptLogger.SetEnabled(false)
	case Normal:
		debugLogger.SetEnabled(false)
		infoLogger.SetEnabled(true)
		errLogger.SetEnabled(true)
		promptLogger.SetEnabled(true)
	case Verbose:
		debugLogger.SetEnabled(true)
		infoLogger.SetEnabled(true)
		errLogger.SetEnabled(true)
		promptLogger.SetEnabled(true)
	}
}

// SetLogOutput tees all loggers to w in addition to their own streams.
func SetLogOutput(w io.Writer) {
	printLogger.SetLogger(w)

	debugLogger.SetLogger(w)
	infoLogger.SetLogger(w)
	errLogger.SetLogger(w)
	promptLogger.SetLogger(w)
}

// Set log level to Normal by default
func init() {
	SetLogLevel(Normal)
}
