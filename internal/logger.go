// Copyright 2015 Ka-Hing Cheung
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/aws/smithy-go/logging"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// registry of named loggers, guarded by mu
var (
	mu      sync.Mutex
	loggers = make(map[string]*logHandle)
)

var unknownFrame = runtime.Frame{Function: "???", File: "???"}

// ANSI colour per level; trace and debug share magenta.
var levelColors = map[logrus.Level]int{
	logrus.PanicLevel: 31,
	logrus.FatalLevel: 31,
	logrus.ErrorLevel: 31,
	logrus.WarnLevel:  33,
	logrus.InfoLevel:  34,
	logrus.DebugLevel: 35,
	logrus.TraceLevel: 35,
}

const logTimeLayout = "2006/01/02 15:04:05.000000"

// logHandle is a logrus logger that formats its own entries as
// "time name[pid] <LEVEL>: message [func@file:line] fields".
type logHandle struct {
	logrus.Logger

	name     string
	pid      int
	colorful bool
}

func (l *logHandle) levelTag(lvl logrus.Level) string {
	tag := strings.ToUpper(lvl.String())
	if !l.colorful {
		return tag
	}
	return fmt.Sprintf("\033[1;%dm%s\033[0m", levelColors[lvl], tag)
}

func (l *logHandle) Format(e *logrus.Entry) ([]byte, error) {
	frame := e.Caller
	if frame == nil {
		frame = &unknownFrame
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s[%d] <%s>: %s [%s@%s:%d]",
		e.Time.Format(logTimeLayout),
		l.name, l.pid,
		l.levelTag(e.Level),
		strings.TrimRight(e.Message, "\n"),
		MethodName(frame.Function), path.Base(frame.File), frame.Line)
	if len(e.Data) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(fmt.Sprint(e.Data))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

// MethodName trims a runtime function name such as
// "github.com/x/y/pkg.(*T).Method.func1" down to "Method". Closure suffixes
// ("func1") and numbered init functions ("init.3") resolve to the enclosing
// name.
func MethodName(fullFuncName string) string {
	if slash := strings.Index(fullFuncName, "/"); slash >= 0 && slash < len(fullFuncName)-1 {
		fullFuncName = fullFuncName[slash+1:]
	}
	dot := strings.LastIndex(fullFuncName, ".")
	if dot < 0 || dot == len(fullFuncName)-1 {
		return fullFuncName
	}
	last := fullFuncName[dot+1:]
	if isClosureName(last) || isDigits(last) && len(last) == 1 {
		if outer := MethodName(fullFuncName[:dot]); outer != "" {
			return outer
		}
	}
	return last
}

func isClosureName(s string) bool {
	return len(s) > 4 && strings.HasPrefix(s, "func") && isDigits(s[4:5])
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Logf lets a logHandle serve as the smithy logger of the S3 client.
func (l *logHandle) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Warn:
		l.Warnf(format, v...)
	default:
		l.Debugf(format, v...)
	}
}

func newLogger(name string) *logHandle {
	l := &logHandle{Logger: *logrus.New(), name: name, pid: os.Getpid()}
	l.Formatter = l
	fd := os.Stderr.Fd()
	l.colorful = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	l.SetReportCaller(true)
	return l
}

// GetLogger returns the logger registered under name, creating it on first
// use.
func GetLogger(name string) *logHandle {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := newLogger(name)
	loggers[name] = l
	return l
}

// forEach runs fn on every registered logger under the registry lock.
func forEach(fn func(l *logHandle)) {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		fn(l)
	}
}

func SetLogLevel(lvl logrus.Level) {
	forEach(func(l *logHandle) { l.SetLevel(lvl) })
}

// ParseLogLevel maps a --loglevel value to a logrus level, falling back to
// warn for anything it does not recognise.
func ParseLogLevel(name string) logrus.Level {
	switch strings.ToLower(name) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func DisableLogColor() {
	forEach(func(l *logHandle) { l.colorful = false })
}

// SetOutFile redirects every logger to a daily rotated file "name.YYYYMMDD",
// with "name" kept as a link to the newest one. Files older than a week are
// pruned and a file is also rotated once it passes 100MiB.
func SetOutFile(name string) error {
	out, err := rotatelogs.New(
		name+".%Y%m%d",
		rotatelogs.WithLinkName(name),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithRotationSize(100<<20),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", name, err)
	}
	forEach(func(l *logHandle) {
		l.SetOutput(out)
		l.colorful = false
	})
	return nil
}

func SetOutput(w io.Writer) {
	forEach(func(l *logHandle) { l.SetOutput(w) })
}
