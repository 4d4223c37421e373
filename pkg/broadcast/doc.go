// Package broadcast provides type-safe one-to-many message delivery.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](10, broadcast.WithReplay())
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast("hello")
//
//	for msg := range sub.Receive() {
//		fmt.Println(msg.Seq, msg.Data)
//	}
//
// Broadcast never blocks. By default a subscriber whose buffer is full is
// closed and removed. With WithConflation it is kept and loses its oldest
// buffered message instead, which suits streams of snapshots where only the
// newest one matters. WithReplay hands the latest message to every new
// subscriber.
//
// A subscription ends when its context is cancelled, when Close is called on
// it, or when the broadcaster is closed.
package broadcast
