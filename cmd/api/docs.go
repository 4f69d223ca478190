package main

// @title Weather Map API
// @version 1.0
// @description Visitor geolocation, reverse geocoding and current weather for points on a world map.
// @description The map page at / talks to the same services over the /ws websocket.

// @host localhost:8080
// @BasePath /
// @schemes http
