// Package fuzztests holds Go fuzz harnesses for the front end
// (source -> lexer -> parser -> format). They guard against panics, hangs
// and span corruption on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
