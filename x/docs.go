/*
Package x contains some standard extensions

Extensions are sub-packages that provide the handlers of the program, as
well as the ambient functionality the runtime needs (signatures, balances).
This package itself only declares the authentication interface shared
between them.
*/
package x
