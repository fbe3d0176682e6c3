package main

import (
	"fmt"
	"io"
)

// printUsage prints the help text in the system language.
// printUsage выводит справку на языке системы.
func printUsage(w io.Writer) {
	switch detectSystemLanguage() {
	case "ru":
		printUsageRU(w)
	default:
		printUsageEN(w)
	}
}

// printUsageRU выводит справку на русском языке.
func printUsageRU(w io.Writer) {
	fmt.Fprintln(w, "runpad - запуск кода Python, C, C++ и Java из терминала")
	fmt.Fprintln(w, "Usage: runpad [-env file] <команда> [аргументы]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Команды:")
	fmt.Fprintln(w, "  run [-lang L] [-json] [-screen] [-theme dark|light] <файл|->")
	fmt.Fprintln(w, "                     Проверить, скомпилировать и запустить код (лимит 10 секунд).")
	fmt.Fprintln(w, "  detect <файл|->    Определить язык кода.")
	fmt.Fprintln(w, "  save [-lang L] <путь> [файл|-]")
	fmt.Fprintln(w, "                     Сохранить код, расширение добавляется по языку.")
	fmt.Fprintln(w, "  share [файл|-]     Скопировать код в буфер обмена.")
	fmt.Fprintln(w, "  session [-lang L] [файл]")
	fmt.Fprintln(w, "                     Интерактивный режим с автосохранением (:help внутри).")
	fmt.Fprintln(w, "  languages          Список поддерживаемых языков.")
	fmt.Fprintln(w, "  version            Показать версию программы.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -env файл          Загрузить переменные из .env файла (по умолчанию .env).")
	fmt.Fprintln(w, "  -h, --help         Показать эту справку.")
	fmt.Fprintln(w, "  -v, --version      Показать версию программы.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Переменные окружения:")
	fmt.Fprintln(w, "  RUNPAD_WORKDIR, RUNPAD_ISOLATE, RUNPAD_RUN_TIMEOUT, RUNPAD_COMPILE_TIMEOUT,")
	fmt.Fprintln(w, "  RUNPAD_PYTHON, RUNPAD_CC, RUNPAD_CXX, RUNPAD_JAVAC, RUNPAD_JAVA,")
	fmt.Fprintln(w, "  RUNPAD_LOG_LEVEL, RUNPAD_METRICS_FILE, RUNPAD_AUTOSAVE_FILE, RUNPAD_AUTOSAVE_INTERVAL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Примеры:")
	fmt.Fprintln(w, "  runpad run hello.py")
	fmt.Fprintln(w, "  cat Main.java | runpad run -lang java -json -")
	fmt.Fprintln(w, "  runpad session -lang cpp")
}

func printUsageEN(w io.Writer) {
	fmt.Fprintln(w, "runpad - run Python, C, C++ and Java code from the terminal")
	fmt.Fprintln(w, "Usage: runpad [-env file] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [-lang L] [-json] [-screen] [-theme dark|light] <file|->")
	fmt.Fprintln(w, "                     Check, compile and run the code (10 second limit).")
	fmt.Fprintln(w, "  detect <file|->    Guess the language of the code.")
	fmt.Fprintln(w, "  save [-lang L] <path> [file|-]")
	fmt.Fprintln(w, "                     Save the code, adding the language extension.")
	fmt.Fprintln(w, "  share [file|-]     Copy the code to the clipboard.")
	fmt.Fprintln(w, "  session [-lang L] [file]")
	fmt.Fprintln(w, "                     Interactive mode with autosave (:help inside).")
	fmt.Fprintln(w, "  languages          List the supported languages.")
	fmt.Fprintln(w, "  version            Show program version.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -env file          Load variables from a .env file (default .env).")
	fmt.Fprintln(w, "  -h, --help         Show this help and usage.")
	fmt.Fprintln(w, "  -v, --version      Show program version.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RUNPAD_WORKDIR, RUNPAD_ISOLATE, RUNPAD_RUN_TIMEOUT, RUNPAD_COMPILE_TIMEOUT,")
	fmt.Fprintln(w, "  RUNPAD_PYTHON, RUNPAD_CC, RUNPAD_CXX, RUNPAD_JAVAC, RUNPAD_JAVA,")
	fmt.Fprintln(w, "  RUNPAD_LOG_LEVEL, RUNPAD_METRICS_FILE, RUNPAD_AUTOSAVE_FILE, RUNPAD_AUTOSAVE_INTERVAL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  runpad run hello.py")
	fmt.Fprintln(w, "  cat Main.java | runpad run -lang java -json -")
	fmt.Fprintln(w, "  runpad session -lang cpp")
}
