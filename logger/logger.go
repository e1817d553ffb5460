package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger   *log.Logger
	HTTPLogger  *log.Logger
	ErrorLogger *log.Logger

	logLevel    string
	appLogFile  *os.File
	httpLogFile *os.File
	initialized bool
)

// openLogFile opens path for appending, creating its directory first. When
// anything fails the returned writer discards and the label says so.
func openLogFile(path, kind string) (*os.File, io.Writer, string) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create %s log directory %s: %v. %s logs will be discarded.", kind, dir, err, kind)
		return nil, io.Discard, "(discarded)"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		ErrorLogger.Printf("Failed to open %s log file %s: %v. %s logs will be discarded.", kind, path, err, kind)
		return nil, io.Discard, "(discarded)"
	}
	return f, f, path
}

// InitGlobalLoggers (re)opens the app and HTTP log files and sets the level.
// Errors always go to stderr regardless of the files.
func InitGlobalLoggers(appLogPath, httpLogPath, level string) error {
	if initialized && appLogFile != nil && httpLogFile != nil && strings.ToUpper(level) == logLevel {
		return nil
	}
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if httpLogFile != nil {
		httpLogFile.Close()
		httpLogFile = nil
	}

	logLevel = strings.ToUpper(level)
	if logLevel == "" {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	var appWriter, httpWriter io.Writer
	var actualAppLogPath, actualHTTPLogPath string
	appLogFile, appWriter, actualAppLogPath = openLogFile(appLogPath, "App")
	httpLogFile, httpWriter, actualHTTPLogPath = openLogFile(httpLogPath, "HTTP")

	AppLogger = log.New(appWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)
	HTTPLogger = log.New(httpWriter, "HTTP: ", log.Ldate|log.Ltime|log.Lshortfile)

	if !initialized {
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, actualAppLogPath)
		HTTPLogger.Printf("HTTP logger initialized. Log level: %s. Output file: %s", logLevel, actualHTTPLogPath)
	}
	initialized = true
	return nil
}

func enabled(min string) bool {
	switch min {
	case "DEBUG":
		return logLevel == "DEBUG"
	case "INFO":
		return logLevel == "INFO" || logLevel == "DEBUG"
	case "WARN":
		return logLevel == "WARN" || logLevel == "INFO" || logLevel == "DEBUG"
	}
	return true
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && enabled("INFO") {
		AppLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && enabled("DEBUG") {
		AppLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && enabled("WARN") {
		AppLogger.Output(2, "WARN: "+fmt.Sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Output(2, message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Output(2, message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

// HTTPInfo logs one backend exchange on the HTTP channel.
func HTTPInfo(format string, v ...interface{}) {
	if HTTPLogger != nil && enabled("INFO") {
		HTTPLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func HTTPDebug(format string, v ...interface{}) {
	if HTTPLogger != nil && enabled("DEBUG") {
		HTTPLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// HTTPError goes to the HTTP log file only; callers surface the failure to
// the user themselves, so it is not echoed to stderr.
func HTTPError(format string, v ...interface{}) {
	if HTTPLogger != nil && httpLogFile != nil {
		HTTPLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil
	}
	if httpLogFile != nil {
		HTTPLogger.Println("Closing HTTP log file.")
		httpLogFile.Close()
		httpLogFile = nil
	}
	initialized = false
}
