/*
Package gtfs preflights the schedule archives handed to the routing engine.

The engine does all real GTFS consumption; this package only answers two
questions before a long engine run is started:

  - does the archive look like a GTFS feed at all (CheckArchive), and
  - does any service actually run on the scenario's departure day
    (ServiceCovers)?

It deliberately builds no index and loads no network.
*/
package gtfs
