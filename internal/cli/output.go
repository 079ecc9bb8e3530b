package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Output управляет форматированием вывода CLI.
type Output struct {
	jsonMode bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{
		jsonMode: jsonMode,
		w:        os.Stdout,
		errW:     os.Stderr,
	}
}

// Success выводит сообщение об успехе в stderr (чтобы не мешать
// машинному разбору stdout).
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Print выводит данные: строку или JSON в зависимости от режима.
func (o *Output) Print(human string, jsonData any) {
	if o.jsonMode {
		o.JSON(jsonData)
		return
	}
	fmt.Fprintln(o.w, human)
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(o.errW, "Error encoding JSON:", err)
	}
}
