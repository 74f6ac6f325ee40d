package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleGateway --dir ../usecase --output usecase --outpkg usecasemock --filename schedule_gateway_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AlertGateway --dir ../usecase --output usecase --outpkg usecasemock --filename alert_gateway_mock.go
