/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps one configuration object under the "_c:<package>" key.
It is loaded from the "conf" section of the genesis file with InitConfig and
read on every transaction with Load.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client.
*/
package gconf
