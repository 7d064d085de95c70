package main

import "github.com/eigotube/immersion-api/cmd"

// @title           Immersion API
// @version         1.0.0
// @description     Subtitle resolution, translation, and study tools for language immersion
// @contact.name    API Support
// @contact.url     https://github.com/eigotube/immersion-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
