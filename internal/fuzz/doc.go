// Package fuzztests houses Go fuzz harnesses for the script front-end
// (source -> lexer -> interpreter). They guard against panics, hangs and
// broken token streams on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// интерпретатор без доступа к диску.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
