// Package fuzztests houses Go fuzz harnesses for the sable front end
// (source -> lexer, type text -> types -> coercion). They guard against
// panics, broken span invariants and non-terminating scans on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
