package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Generator --dir ../platform/id --output platform/id --outpkg idmock --filename generator_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/userinfo --output domain/userinfo --outpkg userinfomock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/workexperience --output domain/workexperience --outpkg workexperiencemock --filename repository_mock.go
