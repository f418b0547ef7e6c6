/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package owns a single configuration entity stored under the "_c:<pkg>"
key. It can be initialized from the genesis file and later updated only
through the package handlers.

*/
package gconf
