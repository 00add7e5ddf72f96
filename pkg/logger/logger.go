package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

var (
	// 不同级别的日志记录器，SetupLogger 之前默认输出到控制台
	InfoLogger    = log.New(os.Stdout, "INFO: ", logFlags)
	WarningLogger = log.New(os.Stdout, "WARNING: ", logFlags)
	ErrorLogger   = log.New(os.Stderr, "ERROR: ", logFlags)

	output io.Writer = os.Stdout
)

// SetupLogger 初始化日志配置，同时输出到控制台和 logDir 下按日期命名的文件
func SetupLogger(logDir string) error {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// SetOutput 将所有级别的日志重定向到 w
func SetOutput(w io.Writer) {
	output = w
	InfoLogger = log.New(w, "INFO: ", logFlags)
	WarningLogger = log.New(w, "WARNING: ", logFlags)
	ErrorLogger = log.New(w, "ERROR: ", logFlags)
}

// Writer 返回当前日志输出，供 gin 的请求日志复用
func Writer() io.Writer {
	return output
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	WarningLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}
