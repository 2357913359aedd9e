package mst

import (
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/x/object"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuorumFollowsActiveOwners(t *testing.T) {
	Convey("Given four active owners", t, func() {
		db := newSystem(t)
		registry := object.NewRegistry()
		e := NewEngine(registry)

		quorum, err := registry.Quorum(db)
		So(err, ShouldBeNil)
		So(quorum, ShouldEqual, 3)

		Convey("When an owner is deactivated", func() {
			id := mustSubmit(t, db, e, TxCode_Deactivate, owners[3], nil)
			mustSign(t, db, e, id, owners[0], owners[1], owners[2])
			_, _, err := e.Execute(db, owners[0], id)
			So(err, ShouldBeNil)

			Convey("The quorum drops to two", func() {
				quorum, err := registry.Quorum(db)
				So(err, ShouldBeNil)
				So(quorum, ShouldEqual, 2)
			})

			Convey("The deactivated owner can no longer submit", func() {
				err := check(db, owners[3], &SubmitMsg{
					Metadata: meta(),
					TxCode:   TxCode_Add,
					Role:     object.Role_Owner,
					Target:   newbie,
				})
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})

			Convey("Two signatures are enough to bring it back", func() {
				id := mustSubmit(t, db, e, TxCode_Activate, owners[3], nil)
				mustSign(t, db, e, id, owners[0], owners[1])
				_, events, err := e.Execute(db, owners[1], id)
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				So(events[0].Name, ShouldEqual, object.EventObjectActivated)

				quorum, err := registry.Quorum(db)
				So(err, ShouldBeNil)
				So(quorum, ShouldEqual, 3)
			})

			Convey("A pending transaction needs the quorum at execution time", func() {
				id := mustSubmit(t, db, e, TxCode_Add, newbie, nil)
				mustSign(t, db, e, id, owners[0], owners[1])

				back := mustSubmit(t, db, e, TxCode_Activate, owners[3], nil)
				mustSign(t, db, e, back, owners[0], owners[2])
				_, _, err := e.Execute(db, owners[0], back)
				So(err, ShouldBeNil)

				_, _, err = e.Execute(db, owners[0], id)
				So(ErrInsufficientSignatures.Is(err), ShouldBeTrue)

				mustSign(t, db, e, id, owners[3])
				_, _, err = e.Execute(db, owners[0], id)
				So(err, ShouldBeNil)
			})
		})
	})
}
